package fluxion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCombineLatest_Scenario_S1 is spec scenario S1: primary emits (10, t=1),
// secondary emits (20, t=2); the first combined state is ([10,20], ts=2);
// then primary emits (11, t=3) and the state is ([11,20], ts=3).
func TestCombineLatest_Scenario_S1(t *testing.T) {
	ctx := context.Background()
	primary := make(chan StreamItem[int, Sequence])
	secondary := make(chan StreamItem[int, Sequence])

	out := CombineLatest[int, Sequence](ctx, primary, []Stream[int, Sequence]{secondary}, nil)

	primary <- Value[int, Sequence](10, 1)
	secondary <- Value[int, Sequence](20, 2)

	first := <-out
	require.True(t, first.IsValue())
	state := first.MustItem().Inner()
	require.Equal(t, []int{10, 20}, state.Values)
	require.Equal(t, Sequence(2), state.Ts)

	primary <- Value[int, Sequence](11, 3)
	second := <-out
	state = second.MustItem().Inner()
	require.Equal(t, []int{11, 20}, state.Values)
	require.Equal(t, Sequence(3), state.Ts)

	close(primary)
	close(secondary)
}

func TestCombineLatest_ForwardsTaggedErrors(t *testing.T) {
	ctx := context.Background()
	primary := make(chan StreamItem[int, Sequence])
	secondary := make(chan StreamItem[int, Sequence])

	out := CombineLatest[int, Sequence](ctx, primary, []Stream[int, Sequence]{secondary}, nil)

	secondary <- ErrorItem[int, Sequence](StreamProcessingError("boom", nil))
	errItem := <-out
	require.True(t, errItem.IsError())
	idx, ok := ExtractSourceIndex(errItem.Err())
	require.True(t, ok)
	require.Equal(t, 1, idx)

	close(primary)
	close(secondary)
}
