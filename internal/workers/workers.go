package workers

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"

	"github.com/tommorgenstern/gradus/internal/paths"
)

const (

	// Environment variable marking a process as a worker. Workers serve
	// requests on the inherited socket instead of forking again.
	workerEnv = "GRADUS_WORKER"

	// File descriptor the listener is passed on. 0..2 are the standard
	// streams, so the first entry of ExtraFiles lands on 3.
	listenerFD = 3
)

// Reports whether this process was spawned as a worker.
func IsWorker() bool {
	return os.Getenv(workerEnv) == "1"
}

// Returns the TCP listener a worker inherited from its supervisor.
func Listener() (net.Listener, error) {
	f := os.NewFile(listenerFD, "listener")
	if f == nil {
		return nil, ErrNoListener
	}
	defer f.Close()

	l, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoListener, err)
	}
	return l, nil
}

// Runs worker processes that share a single listening socket.
//
// The supervisor binds the address once, re-executes itself Count times
// with the socket as an inherited descriptor, and supervises the
// children. It never serves requests itself.
type Supervisor struct {
	Addr  string
	Count int
}

// Binds the address and supervises Count workers until ctx is
// cancelled. Any worker exiting on its own brings the whole group
// down; a dead worker must never linger half-served behind a live
// socket.
func (s *Supervisor) Run(ctx context.Context) error {
	if s.Count < 1 {
		return fmt.Errorf("%w: count %d", ErrSupervisor, s.Count)
	}

	l, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSupervisor, err)
	}
	defer l.Close()

	f, err := l.(*net.TCPListener).File()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSupervisor, err)
	}
	defer f.Close()

	if err := writePID(); err != nil {
		slog.Warn("failed to write PID file", "error", err)
	}
	defer os.Remove(paths.PIDFile())

	slog.Info("supervisor listening", "addr", s.Addr, "workers", s.Count)

	exits := make(chan error, s.Count)
	procs := make([]*exec.Cmd, 0, s.Count)
	defer killAll(procs)

	for i := 0; i < s.Count; i++ {
		cmd, err := spawnWorker(f)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSupervisor, err)
		}
		slog.Info("worker started", "pid", cmd.Process.Pid)
		procs = append(procs, cmd)

		go func(cmd *exec.Cmd) {
			exits <- cmd.Wait()
		}(cmd)
	}

	select {
	case <-ctx.Done():
		killAll(procs)
		for range procs {
			<-exits
		}
		return nil
	case err := <-exits:
		killAll(procs)
		if err == nil {
			return fmt.Errorf("%w: worker exited", ErrWorkerDied)
		}
		return fmt.Errorf("%w: %v", ErrWorkerDied, err)
	}
}

// Re-executes the current binary as a worker with the listener socket
// on the expected descriptor.
func spawnWorker(listener *os.File) (*exec.Cmd, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), workerEnv+"=1")
	cmd.ExtraFiles = []*os.File{listener}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func killAll(procs []*exec.Cmd) {
	for _, cmd := range procs {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}
}

// Writes the supervisor PID so tooling can detect a running instance
// and send it signals.
func writePID() error {
	if err := os.MkdirAll(paths.Runtime(), paths.DefaultDirMode); err != nil {
		return err
	}
	return os.WriteFile(paths.PIDFile(), []byte(fmt.Sprintf("%d", os.Getpid())), paths.DefaultFileMode)
}
