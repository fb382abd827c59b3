package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnbounded_BuffersAheadOfASlowConsumer(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	in := make(chan int)
	out := Unbounded(done, in)

	for i := 0; i < 5; i++ {
		in <- i
	}
	close(in)

	var got []int
	for v := range out {
		got = append(got, v)
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestUnbounded_StopsOnDone(t *testing.T) {
	done := make(chan struct{})
	in := make(chan int)
	out := Unbounded(done, in)

	close(done)

	select {
	case _, ok := <-out:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("out was not closed after done")
	}
}
