package avmedia

import (
	"errors"
	"maps"

	"gopkg.in/yaml.v3"
)

const (
	// MinHeartbeat is the floor, in seconds, for play heartbeat intervals.
	MinHeartbeat = 5
	// MinBufferHeartbeat is the floor, in seconds, for buffer and rebuffer heartbeat intervals.
	MinBufferHeartbeat = 1

	millisPerMinute = 60_000
)

// intervalTable maps whole minutes since an origin to the interval, in
// seconds, of the next heartbeat. Key 0 is always present.
type intervalTable map[int]int

// newIntervalTable clamps every value to floor and guarantees a key 0 entry.
// Negative offsets can never be looked up and are skipped.
func newIntervalTable(src map[int]int, floor int) intervalTable {
	t := make(intervalTable, len(src)+1)
	for k, v := range src {
		if k < 0 {
			continue
		}
		t[k] = max(v, floor)
	}
	if _, ok := t[0]; !ok {
		t[0] = floor
	}
	return t
}

// next returns the interval for the minute bucket (now - origin) falls into.
// Only exact minute keys match; everything else falls back to key 0 rather
// than to the MinHeartbeat or MinBufferHeartbeat constant.
func (t intervalTable) next(originMillis, nowMillis int64) int {
	minutes := int((nowMillis - originMillis) / millisPerMinute)
	if v, ok := t[minutes]; ok {
		return v
	}
	return t[0]
}

func (t intervalTable) clone() map[int]int {
	return maps.Clone(map[int]int(t))
}

func negativeKeys(src map[int]int) []int {
	var keys []int
	for k := range src {
		if k < 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// Schedule holds heartbeat interval tables keyed by minute offset.
//
// A schedule document looks like:
//
//	play:
//	  0: 5
//	  1: 10
//	  5: 30
//	buffer:
//	  0: 1
//	  2: 5
type Schedule struct {
	Play   map[int]int `yaml:"play"`
	Buffer map[int]int `yaml:"buffer"`
}

// ParseSchedule decodes a YAML heartbeat schedule.
func ParseSchedule(data []byte) (Schedule, error) {
	var s Schedule
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schedule{}, errors.Join(ErrInvalidSchedule, err)
	}
	return s, nil
}
