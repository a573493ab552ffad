package avmedia

// AdClick emits av.ad.click.
func (t *Tracker) AdClick(extra map[string]any) { t.signal(EventAdClick, extra) }

// AdSkip emits av.ad.skip.
func (t *Tracker) AdSkip(extra map[string]any) { t.signal(EventAdSkip, extra) }

// Display emits av.display.
func (t *Tracker) Display(extra map[string]any) { t.signal(EventDisplay, extra) }

// Close emits av.close. It does not retire the tracker; see Release.
func (t *Tracker) Close(extra map[string]any) { t.signal(EventClose, extra) }

// Volume emits av.volume.
func (t *Tracker) Volume(extra map[string]any) { t.signal(EventVolume, extra) }

// SubtitleOn emits av.subtitle.on.
func (t *Tracker) SubtitleOn(extra map[string]any) { t.signal(EventSubtitleOn, extra) }

// SubtitleOff emits av.subtitle.off.
func (t *Tracker) SubtitleOff(extra map[string]any) { t.signal(EventSubtitleOff, extra) }

// FullscreenOn emits av.fullscreen.on.
func (t *Tracker) FullscreenOn(extra map[string]any) { t.signal(EventFullscreenOn, extra) }

// FullscreenOff emits av.fullscreen.off.
func (t *Tracker) FullscreenOff(extra map[string]any) { t.signal(EventFullscreenOff, extra) }

// Quality emits av.quality.
func (t *Tracker) Quality(extra map[string]any) { t.signal(EventQuality, extra) }

// Speed emits av.speed.
func (t *Tracker) Speed(extra map[string]any) { t.signal(EventSpeed, extra) }

// Share emits av.share.
func (t *Tracker) Share(extra map[string]any) { t.signal(EventShare, extra) }

// Error stores message under the "error" property and emits av.error.
// The property stays in the bag for later events until replaced or deleted.
func (t *Tracker) Error(message string, extra map[string]any) {
	t.do(func() { t.playerError(message, extra) })
}

func (t *Tracker) playerError(message string, extra map[string]any) {
	t.props[PropError] = message
	t.emit(EventError, false, extra)
}

func (t *Tracker) signal(name string, extra map[string]any) {
	t.do(func() { t.emit(name, false, extra) })
}
