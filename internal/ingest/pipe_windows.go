//go:build windows

package ingest

import "os"

// NonblockingPipe emulates a non-blocking pipe read end on platforms
// without O_NONBLOCK pipes: a background goroutine performs the
// blocking read and hands completed chunks over a buffered channel,
// so Read never parks the caller — the "overlapped/pending reads"
// contract from the design notes, implemented without cgo.
func NonblockingPipe() (r *nonblockingReader, w *os.File, err error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	nr := &nonblockingReader{f: pr, ch: make(chan readResult, 64)}
	go nr.pump()
	return nr, pw, nil
}

type readResult struct {
	buf []byte
	err error
}

type nonblockingReader struct {
	f   *os.File
	ch  chan readResult
}

func (n *nonblockingReader) pump() {
	defer close(n.ch)
	for {
		buf := make([]byte, scratchSize)
		c, err := n.f.Read(buf)
		if c > 0 {
			n.ch <- readResult{buf: buf[:c]}
		}
		if err != nil {
			n.ch <- readResult{err: err}
			return
		}
	}
}

func (n *nonblockingReader) Read(p []byte) (int, error) {
	select {
	case res, ok := <-n.ch:
		if !ok {
			return 0, errWouldBlock
		}
		if res.err != nil {
			return 0, res.err
		}
		c := copy(p, res.buf)
		return c, nil
	default:
		return 0, errWouldBlock
	}
}

func (n *nonblockingReader) Close() error { return n.f.Close() }
