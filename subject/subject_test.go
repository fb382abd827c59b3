package subject

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubject_BroadcastsToAllCurrentSubscribers(t *testing.T) {
	s := New[int]()

	a, unsubA := s.Subscribe()
	defer unsubA()

	require.True(t, s.Next(1))

	b, unsubB := s.Subscribe()
	defer unsubB()

	require.True(t, s.Next(2))
	s.Close()

	var aVals []int
	for v := range a {
		aVals = append(aVals, v)
	}
	var bVals []int
	for v := range b {
		bVals = append(bVals, v)
	}

	require.Equal(t, []int{1, 2}, aVals)
	require.Equal(t, []int{2}, bVals)
}

func TestSubject_SubscribeAfterCloseReturnsEmptyStream(t *testing.T) {
	s := New[int]()
	s.Close()

	out, unsub := s.Subscribe()
	defer unsub()

	_, ok := <-out
	require.False(t, ok)
}

func TestSubject_NextFailsOnceClosed(t *testing.T) {
	s := New[int]()
	s.Close()
	require.False(t, s.Next(1))
}

func TestSubject_CloseIsIdempotent(t *testing.T) {
	s := New[int]()
	s.Close()
	require.NotPanics(t, func() { s.Close() })
	require.True(t, s.IsClosed())
}
