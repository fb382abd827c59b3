package runtime

import (
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

var (
	spawnLoggerOnce sync.Once
	spawnLoggerInst *logiface.Logger[*stumpy.Event]
)

func spawnLogger() *logiface.Logger[*stumpy.Event] {
	spawnLoggerOnce.Do(func() {
		spawnLoggerInst = stumpy.L.New(stumpy.L.WithStumpy())
	})
	return spawnLoggerInst
}

// logSpawnPanic reports a panic recovered from a spawned task that cannot
// be attributed to a specific stream item: anything escaping the spawned
// function itself (a panic in a Subscribe handler's onNext is already turned
// into an error by runCallback and never reaches here). Logged at Crit level since
// nothing downstream observes it as a StreamItem.Error.
func logSpawnPanic(recovered any) {
	spawnLogger().Crit().Interface("recovered", recovered).Log("spawned task panicked")
}
