package lib

import "time"

// ScrollAnimation moves a scroll offset linearly from From to To.
type ScrollAnimation struct {
	From     int
	To       int
	Start    time.Time
	Duration time.Duration
}

func NewScrollAnimation(from, to int, start time.Time, duration time.Duration) ScrollAnimation {
	return ScrollAnimation{
		From:     from,
		To:       to,
		Start:    start,
		Duration: duration,
	}
}

// At returns the offset for now and whether the animation has finished.
func (a ScrollAnimation) At(now time.Time) (offset int, done bool) {
	elapsed := now.Sub(a.Start)
	if a.Duration <= 0 || elapsed >= a.Duration {
		return a.To, true
	}
	if elapsed <= 0 {
		return a.From, false
	}
	progress := float64(elapsed) / float64(a.Duration)
	return a.From + int(float64(a.To-a.From)*progress), false
}
