package world

import "time"

// Clock tracks the world epoch. It is a value; the store owning it decides
// when to swap in an advanced copy.
type Clock struct {
	Epoch         int64         `json:"epoch"`
	StartedAt     time.Time     `json:"started_at"`
	EpochDuration time.Duration `json:"epoch_duration"`
}

func NewClock(startAt time.Time, epochDuration time.Duration) Clock {
	if epochDuration <= 0 {
		epochDuration = 5 * time.Minute
	}
	return Clock{Epoch: 0, StartedAt: startAt, EpochDuration: epochDuration}
}

// Ready reports whether now has reached the next epoch boundary. Calls
// before the boundary are no-ops for the tick.
func (c Clock) Ready(now time.Time) bool {
	return !now.Before(c.StartedAt.Add(c.EpochDuration))
}

// Advanced returns the clock moved one epoch forward with the window
// restarted at now.
func (c Clock) Advanced(now time.Time) Clock {
	c.Epoch++
	c.StartedAt = now
	return c
}

// EndsAt is when the current epoch window closes.
func (c Clock) EndsAt() time.Time {
	return c.StartedAt.Add(c.EpochDuration)
}
