package sched

import "fmt"

// Status is the run state of a Scheduler.
type Status int32

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusStopping
	StatusCompleted
	StatusFaulted
)

var statusNames = [...]string{"idle", "running", "paused", "stopping", "completed", "faulted"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}
