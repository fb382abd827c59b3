package fluxion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestThrottle_Scenario_S4: d=100ms. v1@0 emits and opens the window; v2@50
// falls inside it and is dropped; v3@120 (window long elapsed) emits.
func TestThrottle_Scenario_S4(t *testing.T) {
	ctx := context.Background()
	ft := newFakeTimer()
	raw := make(chan StreamItem[int, Sequence])
	out := Throttle[int, Sequence](ctx, raw, 100*time.Millisecond, ft)
	wait := collectAsync(out)

	raw <- Value[int, Sequence](1, 1)
	waitForWaiter(t, ft, 1)
	raw <- Value[int, Sequence](2, 2)

	ft.Advance(100 * time.Millisecond)
	time.Sleep(20 * time.Millisecond) // let the window-elapsed case win its select race

	raw <- Value[int, Sequence](3, 3)
	close(raw)

	items, errs := wait()
	require.Empty(t, errs)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0].Inner())
	require.Equal(t, 3, items[1].Inner())
}

func TestThrottle_ErrorsBypassWindow(t *testing.T) {
	ctx := context.Background()
	ft := newFakeTimer()
	raw := make(chan StreamItem[int, Sequence], 2)
	raw <- Value[int, Sequence](1, 1)
	raw <- ErrorItem[int, Sequence](StreamProcessingError("boom", nil))
	close(raw)

	out := Throttle[int, Sequence](ctx, raw, time.Hour, ft)
	items, errs := Collect(out)
	require.Len(t, items, 1)
	require.Len(t, errs, 1)
}
