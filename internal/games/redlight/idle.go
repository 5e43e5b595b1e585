package redlight

// IdleTracker measures how long motion has stayed continuously below the
// green movement threshold.
type IdleTracker struct {
	since  int64
	active bool
}

// Update feeds one observation and returns the current idle duration in ms.
// A moving observation clears the marker; the first still observation sets it.
func (t *IdleTracker) Update(nowMS int64, still bool) int64 {
	if !still {
		t.Clear()
		return 0
	}
	if !t.active {
		t.since = nowMS
		t.active = true
		return 0
	}
	return nowMS - t.since
}

// Clear drops the idle marker.
func (t *IdleTracker) Clear() {
	t.since = 0
	t.active = false
}

// Active reports whether an idle window is open.
func (t *IdleTracker) Active() bool {
	return t.active
}

// Since returns the idle start timestamp. Only meaningful when Active.
func (t *IdleTracker) Since() int64 {
	return t.since
}

// Duration returns the idle time at nowMS without mutating the tracker.
func (t *IdleTracker) Duration(nowMS int64) int64 {
	if !t.active {
		return 0
	}
	return nowMS - t.since
}
