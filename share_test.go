package fluxion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestShare_Scenario_S7: subscribe A, send v1, subscribe B, send v2.
// A receives [v1, v2]; B receives [v2].
func TestShare_Scenario_S7(t *testing.T) {
	ctx := context.Background()
	subj := NewFluxionSubject[int, Sequence](nil)

	aCtx, aCancel := context.WithCancel(ctx)
	defer aCancel()
	a := subj.Subscribe(aCtx)

	require.True(t, subj.Next(NewItem[int, Sequence](1, 1)))

	bCtx, bCancel := context.WithCancel(ctx)
	defer bCancel()
	b := subj.Subscribe(bCtx)

	require.True(t, subj.Next(NewItem[int, Sequence](2, 2)))

	subj.Close()

	aItems, _ := Collect(a)
	bItems, _ := Collect(b)

	require.Len(t, aItems, 2)
	require.Equal(t, 1, aItems[0].Inner())
	require.Equal(t, 2, aItems[1].Inner())

	require.Len(t, bItems, 1)
	require.Equal(t, 2, bItems[0].Inner())
}

func TestShare_ForwarderBroadcastsSourceCompletion(t *testing.T) {
	ctx := context.Background()
	src := make(chan StreamItem[int, Sequence])

	share := Share[int, Sequence](ctx, src)
	defer share.Close()

	out := share.Subscribe(ctx)
	src <- Value[int, Sequence](1, 1)
	close(src)

	items, errs := Collect(out)
	require.Empty(t, errs)
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Inner())

	require.NoError(t, share.Wait())
	require.True(t, share.subject.IsClosed())
	_ = time.Millisecond
}

func TestShare_MetricsTrackForwardedAndSubscribers(t *testing.T) {
	ctx := context.Background()
	src := make(chan StreamItem[int, Sequence])
	metrics := NewBasicShareMetrics()

	share := Share[int, Sequence](ctx, src, WithShareMetrics(metrics))
	defer share.Close()

	subCtx, subCancel := context.WithCancel(ctx)
	out := share.Subscribe(subCtx)

	require.Eventually(t, func() bool {
		return metrics.SubscriberCount() == 1
	}, time.Second, time.Millisecond)

	src <- Value[int, Sequence](1, 1)
	require.Eventually(t, func() bool {
		return metrics.ForwardedCount() == 1
	}, time.Second, time.Millisecond)

	subCancel()
	require.Eventually(t, func() bool {
		return metrics.SubscriberCount() == 0
	}, time.Second, time.Millisecond)

	close(src)
	_, _ = Collect(out)
	require.NoError(t, share.Wait())
}
