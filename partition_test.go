package fluxion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPartition_Scenario_S8: source 1,2,3,4 partitioned by parity; true
// (even) receives 2,4; false receives 1,3.
func TestPartition_Scenario_S8(t *testing.T) {
	ctx := context.Background()
	src := seqSource(ctx, 1, 2, 3, 4)

	trueStream, falseStream := Partition(ctx, src, func(v int) bool { return v%2 == 0 })

	require.Equal(t, []int{2, 4}, collectValues(t, trueStream))
	require.Equal(t, []int{1, 3}, collectValues(t, falseStream))
}

func TestPartition_DuplicatesErrorsToBothSides(t *testing.T) {
	ctx := context.Background()
	raw := make(chan StreamItem[int, Sequence], 1)
	raw <- ErrorItem[int, Sequence](StreamProcessingError("boom", nil))
	close(raw)

	trueStream, falseStream := Partition[int, Sequence](ctx, raw, func(v int) bool { return true })

	_, trueErrs := Collect(trueStream)
	_, falseErrs := Collect(falseStream)
	require.Len(t, trueErrs, 1)
	require.Len(t, falseErrs, 1)
}
