package combine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlots_CompleteOnlyAfterEveryPositionFilled(t *testing.T) {
	s := NewSlots[int](3)
	require.False(t, s.Complete())

	s.Set(1, 20)
	require.False(t, s.Complete())

	s.Set(0, 10)
	s.Set(2, 30)
	require.True(t, s.Complete())

	require.Equal(t, []int{10, 20, 30}, s.Snapshot())
}

func TestSlots_SetOverwritesPositionally(t *testing.T) {
	s := NewSlots[string](2)
	s.Set(0, "a")
	s.Set(1, "b")
	s.Set(0, "a2")

	v, ok := s.Get(0)
	require.True(t, ok)
	require.Equal(t, "a2", v)

	v, ok = s.Get(1)
	require.True(t, ok)
	require.Equal(t, "b", v)
}
