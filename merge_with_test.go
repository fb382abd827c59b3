package fluxion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMergeWith_AggregatesStateAcrossInterleavedStreams builds a running
// count of items seen so far, shared across two added streams, and checks
// the merged output is totally ordered by timestamp (spec §4.10).
func TestMergeWith_AggregatesStateAcrossInterleavedStreams(t *testing.T) {
	ctx := context.Background()

	raw1 := make(chan StreamItem[string, Sequence], 2)
	raw1 <- Value[string, Sequence]("a", 1)
	raw1 <- Value[string, Sequence]("c", 3)
	close(raw1)

	raw2 := make(chan StreamItem[string, Sequence], 2)
	raw2 <- Value[string, Sequence]("b", 2)
	raw2 <- Value[string, Sequence]("d", 4)
	close(raw2)

	m := NewMergeWith[string, int, Sequence](ctx, 0, nil)
	m.Add(raw1, func(item Item[string, Sequence], state *int) string {
		*state++
		return item.Inner()
	})
	m.Add(raw2, func(item Item[string, Sequence], state *int) string {
		*state++
		return item.Inner()
	})

	items, errs := Collect(m.Merged())
	require.Empty(t, errs)
	require.Len(t, items, 4)

	order := make([]string, len(items))
	for i, it := range items {
		order[i] = it.Inner()
	}
	require.Equal(t, []string{"a", "b", "c", "d"}, order)
	require.Equal(t, 4, m.State())
}

func TestMergeWith_ErrorsForwardWithoutTouchingState(t *testing.T) {
	ctx := context.Background()

	raw := make(chan StreamItem[int, Sequence], 2)
	raw <- ErrorItem[int, Sequence](StreamProcessingError("boom", nil))
	raw <- Value[int, Sequence](1, 1)
	close(raw)

	m := NewMergeWith[int, int, Sequence](ctx, 0, nil)
	m.Add(raw, func(item Item[int, Sequence], state *int) int {
		*state += item.Inner()
		return item.Inner()
	})

	items, errs := Collect(m.Merged())
	require.Len(t, errs, 1)
	require.Len(t, items, 1)
	require.Equal(t, 1, m.State())
}
