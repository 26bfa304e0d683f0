package workers

import "errors"

var (
	ErrSupervisor = errors.New("supervisor error")
	ErrWorkerDied = errors.New("worker died")
	ErrNoListener = errors.New("no inherited listener")
)
