package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestThrottle_AdmitsOncePerWindow(t *testing.T) {
	m := NewManual()
	th := NewThrottle(m, DefaultThrottleInterval)

	require.True(t, th.Allow())
	require.False(t, th.Allow())
	m.Advance(DefaultThrottleInterval - time.Millisecond)
	require.False(t, th.Allow())
	m.Advance(time.Millisecond)
	require.True(t, th.Allow())
}

func TestThrottle_StopReopens(t *testing.T) {
	m := NewManual()
	th := NewThrottle(m, time.Second)
	require.True(t, th.Allow())
	th.Stop()
	require.Zero(t, m.Pending())
	require.True(t, th.Allow())
}

func TestThrottle_NonPositiveIntervalAdmitsAll(t *testing.T) {
	th := NewThrottle(NewManual(), 0)
	for range 3 {
		require.True(t, th.Allow())
	}
}
