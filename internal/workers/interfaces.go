// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to spawn their goroutines internally and
// return immediately; a worker that also implements Stop is shut down by
// the Workers aggregate.
type Worker interface {
	Run()
}

// Stopper is implemented by workers that hold resources needing explicit
// shutdown. Workers without it are assumed to exit with the process.
type Stopper interface {
	Stop()
}
