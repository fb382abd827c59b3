package fluxion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistinctUntilChanged(t *testing.T) {
	ctx := context.Background()
	src := seqSource(ctx, 1, 1, 2, 2, 2, 1)
	out := DistinctUntilChanged(ctx, src)
	require.Equal(t, []int{1, 2, 1}, collectValues(t, out))
}

func TestDistinctUntilChanged_Idempotent(t *testing.T) {
	ctx := context.Background()
	src := seqSource(ctx, 1, 2, 3)
	out := DistinctUntilChanged(ctx, DistinctUntilChanged(ctx, src))
	require.Equal(t, []int{1, 2, 3}, collectValues(t, out))
}

func TestDistinctUntilChangedBy(t *testing.T) {
	ctx := context.Background()
	src := seqSource(ctx, 1, 3, 4, 6, 7)
	out := DistinctUntilChangedBy(ctx, src, func(a, b int) bool { return a%2 == b%2 })
	require.Equal(t, []int{1, 4, 7}, collectValues(t, out))
}

func TestDistinctUntilChanged_ErrorsPassThroughAndDoNotUpdateLast(t *testing.T) {
	ctx := context.Background()
	raw := make(chan StreamItem[int, Sequence], 4)
	raw <- Value[int, Sequence](1, 1)
	raw <- ErrorItem[int, Sequence](StreamProcessingError("boom", nil))
	raw <- Value[int, Sequence](1, 2)
	close(raw)

	out := DistinctUntilChanged[int, Sequence](ctx, raw)
	items, errs := Collect(out)
	require.Len(t, errs, 1)
	require.Len(t, items, 1, "second Value(1) must not re-emit: the remembered last value survives the intervening error")
}
