package fluxion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWindowByCount_Scenario_S6: source 1,2,3,4,5 then completes; output
// [1,2,3] timestamped 3, then [4,5] timestamped 5.
func TestWindowByCount_Scenario_S6(t *testing.T) {
	ctx := context.Background()
	src := seqSource(ctx, 1, 2, 3, 4, 5)

	out := WindowByCount(ctx, src, 3)
	items, errs := Collect(out)
	require.Empty(t, errs)
	require.Len(t, items, 2)

	require.Equal(t, []int{1, 2, 3}, items[0].Inner())
	require.Equal(t, Sequence(3), items[0].Timestamp())

	require.Equal(t, []int{4, 5}, items[1].Inner())
	require.Equal(t, Sequence(5), items[1].Timestamp())
}

func TestWindowByCount_PanicsOnZero(t *testing.T) {
	ctx := context.Background()
	src := seqSource(ctx, 1)
	require.Panics(t, func() {
		WindowByCount(ctx, src, 0)
	})
}
