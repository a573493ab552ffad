package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mediatrack/pkg/avmedia"
	"github.com/dmitrymomot/mediatrack/pkg/event"
	"github.com/dmitrymomot/mediatrack/pkg/logger"
)

var (
	errEmptyScript   = errors.New("script has no steps")
	errMissingAction = errors.New("step has no action")
)

// Script is a recorded sequence of player actions.
type Script struct {
	Schedule   avmedia.Schedule `yaml:"schedule"`
	Properties map[string]any   `yaml:"properties"`
	Steps      []Step           `yaml:"steps"`
}

// Step is one Track call followed by an optional pause before the next step.
type Step struct {
	Action  string         `yaml:"action"`
	Options map[string]any `yaml:"options"`
	Extra   map[string]any `yaml:"extra"`
	Wait    time.Duration  `yaml:"wait"`
}

func loadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return parseScript(data)
}

func parseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	if len(s.Steps) == 0 {
		return Script{}, errEmptyScript
	}
	for i, step := range s.Steps {
		if step.Action == "" {
			return Script{}, fmt.Errorf("step %d: %w", i+1, errMissingAction)
		}
	}
	return s, nil
}

// jsonLines is the replay Deliverer. It writes every event as one JSON object
// per line and keeps the first write failure.
type jsonLines struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

type eventLine struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

func newJSONLines(out io.Writer) *jsonLines {
	return &jsonLines{enc: json.NewEncoder(out)}
}

func (w *jsonLines) Deliver(_ context.Context, batch []event.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil {
		return w.err
	}
	for _, e := range batch {
		if err := w.enc.Encode(eventLine{Name: e.Name, Data: e.Data}); err != nil {
			w.err = fmt.Errorf("write events: %w", err)
			return w.err
		}
	}
	return nil
}

func (w *jsonLines) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// replay drives a tracker through the script and writes every emitted event
// to out as one JSON object per line. Heartbeats fired between steps are
// written too. Replay stops at the first failed write.
func replay(ctx context.Context, s Script, cfg avmedia.Config, out io.Writer, log *slog.Logger) error {
	w := newJSONLines(out)

	tracker, err := avmedia.New(
		event.NewBuffer(w, event.WithBufferLogger(log), event.WithBufferContext(ctx)),
		avmedia.WithLogger(log),
		avmedia.WithConfig(cfg),
		avmedia.WithSchedule(s.Schedule),
		avmedia.WithProperties(s.Properties),
	)
	if err != nil {
		return err
	}

	runErr := runSteps(ctx, tracker, s.Steps, w, log)
	tracker.Release()

	if runErr != nil {
		return runErr
	}
	return w.Err()
}

func runSteps(ctx context.Context, tracker *avmedia.Tracker, steps []Step, w *jsonLines, log *slog.Logger) error {
	for i, step := range steps {
		log.Debug("replaying step", slog.Int("step", i+1), logger.Event(step.Action))
		tracker.Track(step.Action, step.Options, step.Extra)
		if err := w.Err(); err != nil {
			return err
		}

		if step.Wait <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step.Wait):
		}
	}
	return nil
}
