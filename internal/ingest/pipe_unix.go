//go:build !windows

package ingest

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// NonblockingPipe creates a pipe whose read end never blocks: reads
// on an empty pipe return (0, WouldBlock()) instead of parking the
// calling goroutine, matching query.cpp's nonblocking_pipe().
func NonblockingPipe() (r *nonblockingReader, w *os.File, err error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	fd := int(pr.Fd())
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		pr.Close()
		pw.Close()
		return nil, nil, err
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
		pr.Close()
		pw.Close()
		return nil, nil, err
	}
	return &nonblockingReader{f: pr}, pw, nil
}

// nonblockingReader adapts an O_NONBLOCK file descriptor to the
// ingest.errWouldBlock convention expected by Ingestor.Tick.
type nonblockingReader struct {
	f *os.File
}

func (n *nonblockingReader) Read(p []byte) (int, error) {
	c, err := n.f.Read(p)
	if err != nil && errors.Is(err, unix.EAGAIN) {
		return c, errWouldBlock
	}
	return c, err
}

// Close closes the read end of the pipe.
func (n *nonblockingReader) Close() error { return n.f.Close() }
