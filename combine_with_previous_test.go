package fluxion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombineWithPrevious(t *testing.T) {
	ctx := context.Background()
	src := seqSource(ctx, 1, 2, 3)
	out := CombineWithPrevious(ctx, src)

	items, errs := Collect(out)
	require.Empty(t, errs)
	require.Len(t, items, 3)

	require.Nil(t, items[0].Inner().Previous)
	require.Equal(t, 1, items[0].Inner().Current)

	require.NotNil(t, items[1].Inner().Previous)
	require.Equal(t, 1, *items[1].Inner().Previous)
	require.Equal(t, 2, items[1].Inner().Current)

	require.NotNil(t, items[2].Inner().Previous)
	require.Equal(t, 2, *items[2].Inner().Previous)
	require.Equal(t, 3, items[2].Inner().Current)
}

func TestCombineWithPrevious_PairsAcrossAnError(t *testing.T) {
	ctx := context.Background()
	raw := make(chan StreamItem[int, Sequence], 3)
	raw <- Value[int, Sequence](1, 1)
	raw <- ErrorItem[int, Sequence](StreamProcessingError("boom", nil))
	raw <- Value[int, Sequence](2, 2)
	close(raw)

	out := CombineWithPrevious[int, Sequence](ctx, raw)
	items, errs := Collect(out)
	require.Len(t, errs, 1)
	require.Len(t, items, 2)
	require.Equal(t, 1, *items[1].Inner().Previous)
	require.Equal(t, 2, items[1].Inner().Current)
}
