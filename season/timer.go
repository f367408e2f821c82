package season

// Broadcaster receives every season the timer publishes.
type Broadcaster interface {
	Broadcast(s Season)
}

// BroadcasterFunc adapts a function to Broadcaster.
type BroadcasterFunc func(Season)

func (f BroadcasterFunc) Broadcast(s Season) {
	if f != nil {
		f(s)
	}
}

// Timer flips between summer and winter every Length time units while
// enabled. Enabling and disabling both reset it to summer and broadcast.
type Timer struct {
	Length float64

	season  Season
	elapsed float64
	enabled bool
	out     Broadcaster
}

// NewTimer returns a disabled timer. A non-positive length falls back to
// DefaultLength.
func NewTimer(length float64, out Broadcaster) *Timer {
	if length <= 0 {
		length = DefaultLength
	}
	return &Timer{Length: length, out: out}
}

// OnEnable starts the timer in summer.
func (t *Timer) OnEnable() {
	if t == nil {
		return
	}
	t.enabled = true
	t.reset()
}

// OnDisable stops the timer. The last broadcast is always summer, whatever
// season was active.
func (t *Timer) OnDisable() {
	if t == nil {
		return
	}
	t.enabled = false
	t.reset()
}

// Tick advances the timer by dt and reports whether the season flipped. At
// most one flip happens per tick.
func (t *Timer) Tick(dt float64) bool {
	if t == nil || !t.enabled {
		return false
	}
	if dt > 0 {
		t.elapsed += dt
	}
	if t.elapsed < t.length() {
		return false
	}
	t.season = t.season.Next()
	t.elapsed = 0
	t.broadcast()
	return true
}

// SetBroadcaster replaces the output. It does not broadcast.
func (t *Timer) SetBroadcaster(out Broadcaster) {
	if t != nil {
		t.out = out
	}
}

func (t *Timer) Season() Season {
	if t == nil {
		return Summer
	}
	return t.season
}

func (t *Timer) Elapsed() float64 {
	if t == nil {
		return 0
	}
	return t.elapsed
}

// Progress reports how far the current season is toward its flip, in [0, 1].
// It measures against the effective length, so a zero Length is safe.
func (t *Timer) Progress() float64 {
	if t == nil {
		return 0
	}
	p := t.elapsed / t.length()
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (t *Timer) Enabled() bool {
	return t != nil && t.enabled
}

func (t *Timer) length() float64 {
	if t.Length <= 0 {
		return DefaultLength
	}
	return t.Length
}

func (t *Timer) reset() {
	t.season = Summer
	t.elapsed = 0
	t.broadcast()
}

func (t *Timer) broadcast() {
	if t.out != nil {
		t.out.Broadcast(t.season)
	}
}
