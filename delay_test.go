package fluxion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDelay_PreservesOrderAcrossConcurrentInFlightValues(t *testing.T) {
	ctx := context.Background()
	ft := newFakeTimer()
	raw := make(chan StreamItem[int, Sequence])
	out := Delay[int, Sequence](ctx, raw, 100*time.Millisecond, ft)

	raw <- Value[int, Sequence](1, 1)
	waitForWaiter(t, ft, 1)
	raw <- Value[int, Sequence](2, 2)
	waitForWaiter(t, ft, 2)
	close(raw)

	ft.Advance(100 * time.Millisecond)

	items, errs := Collect(out)
	require.Empty(t, errs)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0].Inner())
	require.Equal(t, 2, items[1].Inner())
}

func TestDelay_ErrorsEmittedWithoutDelay(t *testing.T) {
	ctx := context.Background()
	ft := newFakeTimer()
	raw := make(chan StreamItem[int, Sequence], 1)
	raw <- ErrorItem[int, Sequence](StreamProcessingError("boom", nil))
	close(raw)

	out := Delay[int, Sequence](ctx, raw, time.Hour, ft)
	items, errs := Collect(out)
	require.Empty(t, items)
	require.Len(t, errs, 1)
}
