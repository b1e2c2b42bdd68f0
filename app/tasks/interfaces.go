package tasks

// TaskSchedulerInterface defines the interface for task scheduling
// operations. Used by the main application to manage background task
// processing: catalog synchronization, withdrawal settlement and
// history pruning.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
