//go:build unit

package clock_test

import (
	"sync"
	"testing"
	"time"

	"court-booking-engine/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestRealClockPrecision(t *testing.T) {
	now := clock.NewRealClock().Now()
	assert.Zero(t, now.Nanosecond()%int(clock.Precision))
}

func TestMockClock(t *testing.T) {
	start := time.Date(2030, time.June, 5, 9, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)

	clk.Add(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clk.Now())

	clk.Set(start)
	assert.Equal(t, start, clk.Now())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clk.Add(time.Minute)
			_ = clk.Now()
		}()
	}
	wg.Wait()
	assert.Equal(t, start.Add(8*time.Minute), clk.Now())
}
