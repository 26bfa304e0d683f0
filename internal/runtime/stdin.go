package runtime

import (
	"io"
	"sync"
)

// Tracks exhaustion of an exec process's stdin stream.
//
// Copies and build-step input feed exec processes through a pipe; the shim
// keeps its end of the stdin FIFO open, so the runtime has to close stdin
// itself once the source is drained. This wrapper reports that moment: the
// eof channel is closed exactly once when the underlying reader first
// returns [io.EOF].
type stdinReader struct {
	src  io.Reader
	once sync.Once
	eof  chan struct{}
}

func trackStdin(src io.Reader) *stdinReader {
	return &stdinReader{src: src, eof: make(chan struct{})}
}

// Signals when the source reader has been fully drained.
func (s *stdinReader) Drained() <-chan struct{} {
	return s.eof
}

// Delegates to the source reader, closing the eof channel on the first
// [io.EOF]. Other errors pass through without signalling.
func (s *stdinReader) Read(p []byte) (int, error) {
	n, err := s.src.Read(p)
	if err == io.EOF {
		s.once.Do(func() { close(s.eof) })
	}
	return n, err
}
