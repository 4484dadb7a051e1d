package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeadline(t *testing.T) {
	t.Run("zero budget is expired immediately", func(t *testing.T) {
		d := NewDeadline(frozenClock(), 0)
		require.True(t, d.Expired())
		require.Equal(t, 1.0, d.Fraction())
	})

	t.Run("negative budget is treated as zero", func(t *testing.T) {
		require.True(t, NewDeadline(frozenClock(), -time.Second).Expired())
	})

	t.Run("expires once the budget is spent", func(t *testing.T) {
		d := NewDeadline(steppingClock(time.Millisecond), 3*time.Millisecond)
		require.False(t, d.Expired(), "1ms elapsed")
		require.False(t, d.Expired(), "2ms elapsed")
		require.True(t, d.Expired(), "3ms elapsed")
		require.True(t, d.Expired(), "never extended")
	})

	t.Run("fraction is clamped", func(t *testing.T) {
		d := NewDeadline(steppingClock(time.Millisecond), 4*time.Millisecond)
		require.InDelta(t, 0.25, d.Fraction(), 1e-9)
		require.InDelta(t, 0.5, d.Fraction(), 1e-9)
		d.Elapsed()
		d.Elapsed()
		require.Equal(t, 1.0, d.Fraction())
	})
}
