package search

// Debouncer settles the live input value after a quiet interval. Every
// keystroke bumps the token, invalidating any timer started for an earlier
// value; only the timer carrying the newest token may settle.
type Debouncer struct {
	live  string
	token int
}

// Live returns the current live value.
func (d *Debouncer) Live() string { return d.live }

// Set records a live-input change and returns the token the caller must
// attach to the timer it starts.
func (d *Debouncer) Set(value string) int {
	d.live = value
	d.token++
	return d.token
}

// Fire is called when a timer elapses. It returns the value to settle and
// true only if no newer keystroke arrived since the timer was started.
func (d *Debouncer) Fire(token int) (string, bool) {
	if token != d.token {
		return "", false
	}
	return d.live, true
}

// Reset clears the live value and invalidates all outstanding timers.
func (d *Debouncer) Reset() {
	d.live = ""
	d.token++
}
