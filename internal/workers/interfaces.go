// Package workers runs the background jobs of the shop next to the servers.
// It defines the Worker interface and a Workers aggregate that starts and
// stops every configured worker together.
package workers

// Worker is a background job.
//
// Run starts the job and must not block; long-running work belongs in
// goroutines owned by the worker. Stop ends the job and waits for a run in
// progress to finish.
type Worker interface {
	Run()
	Stop()
}
