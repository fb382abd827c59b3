package fluxion

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestOnError_Scenario_S9: Value(1), Error("validation failed"),
// Error("network issue"), Value(2) through a three-stage on_error chain
// that consumes both errors; output is 1, 2.
func TestOnError_Scenario_S9(t *testing.T) {
	ctx := context.Background()
	raw := make(chan StreamItem[int, Sequence], 4)
	raw <- Value[int, Sequence](1, 1)
	raw <- ErrorItem[int, Sequence](StreamProcessingError("validation failed", nil))
	raw <- ErrorItem[int, Sequence](StreamProcessingError("network issue", nil))
	raw <- Value[int, Sequence](2, 2)
	close(raw)

	contains := func(s string) func(error) bool {
		return func(err error) bool { return strings.Contains(err.Error(), s) }
	}

	stage1 := OnError[int, Sequence](ctx, raw, contains("validation"))
	stage2 := OnError(ctx, stage1, contains("network"))
	stage3 := OnError(ctx, stage2, func(error) bool { return true })

	require.Equal(t, []int{1, 2}, collectValues(t, stage3))
}
