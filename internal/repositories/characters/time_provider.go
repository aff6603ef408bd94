package characters

import "time"

// TimeProvider stamps CreatedAt and UpdatedAt
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

// Now is truncated to milliseconds so every backend round-trips it exactly
func (realTimeProvider) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func now() time.Time {
	return realTimeProvider{}.Now()
}
