package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fakeClock(steps ...time.Duration) func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	return func() time.Time {
		t := base
		if i < len(steps) {
			t = base.Add(steps[i])
			i++
		}
		return t
	}
}

func TestTrackerRecordsDurations(t *testing.T) {
	tt := NewTracker(nil)
	tt.now = fakeClock(0, 30*time.Millisecond, 0, 10*time.Millisecond)

	ctx := tt.StartTiming(context.Background(), "load")
	assert.Equal(t, 30*time.Millisecond, tt.EndTiming(ctx))

	ctx = tt.StartTiming(context.Background(), "load")
	tt.EndTiming(ctx)

	assert.Equal(t, []time.Duration{30 * time.Millisecond, 10 * time.Millisecond}, tt.GetTimings("load"))
	assert.Equal(t, 20*time.Millisecond, tt.GetAverageTime("load"))
	assert.Equal(t, []string{"load"}, tt.Operations())
}

func TestTrackerIgnoresForeignContexts(t *testing.T) {
	tt := NewTracker(nil)
	assert.Zero(t, tt.EndTiming(context.Background()))
	assert.Nil(t, tt.GetTimings("load"))
	assert.Zero(t, tt.GetAverageTime("load"))
}

func TestTrackerSeparatesOperations(t *testing.T) {
	tt := NewTracker(nil)
	tt.now = fakeClock(0, 5*time.Millisecond, 0, 7*time.Millisecond)

	tt.EndTiming(tt.StartTiming(context.Background(), "save"))
	tt.EndTiming(tt.StartTiming(context.Background(), "decode"))

	assert.Equal(t, []string{"decode", "save"}, tt.Operations())
	assert.Equal(t, 5*time.Millisecond, tt.GetAverageTime("save"))
	assert.Equal(t, 7*time.Millisecond, tt.GetAverageTime("decode"))
}
