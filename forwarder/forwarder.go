// Package forwarder provides a background worker that copies bytes from an
// io.Reader to an io.Writer until the source is exhausted, an error occurs,
// or the worker is stopped. The copy loop runs in its own goroutine so the
// blocking reads and writes never block the caller.
package forwarder

import (
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const copyChunkSize = 32 * 1024

var (
	// ErrorStopped is returned from Join when the forwarder was stopped before
	// the source reached end-of-data. This is the expected result after Stop.
	ErrorStopped = errors.New("The forwarder was stopped before the source was exhausted")

	// ErrorShortWrite is returned from Join when the sink consumed less than a
	// full chunk without reporting an error.
	ErrorShortWrite = errors.New("The sink accepted a write of zero bytes without returning an error")
)

// Forwarder copies bytes from src to dst in a background goroutine. The
// goroutine is started by New and runs until the source returns io.EOF, an
// I/O error occurs, or Stop is called. The result can be obtained with Join.
type Forwarder struct {
	mutex sync.Mutex

	src io.Reader
	dst io.Writer

	closeSrc bool
	closeDst bool

	stopChan chan (struct{})
	stopped  bool

	doneChan chan (struct{})
	result   error
	copied   int64

	logger *logrus.Entry
}

// New creates a Forwarder and starts its copy loop immediately. If closeSrc
// or closeDst is set the corresponding side is closed when the loop exits,
// provided it implements io.Closer. Exactly the sides the forwarder owns
// should be flagged, never the ones the caller wants back.
func New(src io.Reader, dst io.Writer, closeSrc bool, closeDst bool) *Forwarder {
	return NewWithLogger(src, dst, closeSrc, closeDst, nil)
}

// NewWithLogger is like New but logs the forwarder lifecycle to the given
// logger. Each forwarder gets a unique id field so concurrent forwarders can
// be told apart. A nil logger disables logging.
func NewWithLogger(src io.Reader, dst io.Writer, closeSrc bool, closeDst bool, logger *logrus.Entry) *Forwarder {
	f := &Forwarder{
		src:      src,
		dst:      dst,
		closeSrc: closeSrc,
		closeDst: closeDst,
		stopChan: make(chan (struct{})),
		doneChan: make(chan (struct{})),
	}

	if logger != nil {
		f.logger = logger.WithField("forwarder", uuid.New().String())
	}

	go f.run()

	return f
}

func (f *Forwarder) run() {
	if f.logger != nil {
		f.logger.Debug("Forwarding started")
	}

	buf := make([]byte, copyChunkSize)

	var result error

loop:
	for {
		select {
		case <-f.stopChan:
			result = ErrorStopped
			break loop
		default:
		}

		n, readErr := f.src.Read(buf)

		if n > 0 {
			/* A chunk read after the stop request is dropped, not written. The
			 * consumer asked for no further I/O and unread source data may be
			 * discarded. */
			select {
			case <-f.stopChan:
				result = ErrorStopped
				break loop
			default:
			}

			written := 0
			for written < n {
				m, writeErr := f.dst.Write(buf[written:n])
				if m > 0 {
					written += m
					f.addCopied(int64(m))
				}
				if writeErr != nil {
					result = writeErr
					break loop
				}
				if m <= 0 {
					result = ErrorShortWrite
					break loop
				}
			}
		}

		if readErr != nil {
			if readErr != io.EOF {
				result = readErr
			}
			break loop
		}
	}

	/* An I/O error that races with a stop request is reported as a stop: the
	 * error is usually a consequence of the caller tearing down the pipe end
	 * it no longer wants. */
	if result != nil && result != ErrorStopped {
		select {
		case <-f.stopChan:
			result = ErrorStopped
		default:
		}
	}

	if f.closeSrc {
		if c, ok := f.src.(io.Closer); ok {
			c.Close()
		}
	}
	if f.closeDst {
		if c, ok := f.dst.(io.Closer); ok {
			c.Close()
		}
	}

	f.mutex.Lock()
	f.result = result
	close(f.doneChan)
	f.mutex.Unlock()

	if f.logger != nil {
		if result == nil {
			f.logger.Debugf("Forwarding completed after %d bytes", f.Copied())
		} else {
			f.logger.Debugf("Forwarding finished after %d bytes: %v", f.Copied(), result)
		}
	}
}

func (f *Forwarder) addCopied(n int64) {
	f.mutex.Lock()
	f.copied += n
	f.mutex.Unlock()
}

// Copied returns the number of bytes accepted by the sink so far. It can be
// called at any time, also while the loop is running.
func (f *Forwarder) Copied() int64 {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.copied
}

// Stop requests the copy loop to exit at the next read or write boundary. It
// does not interrupt a read or write that is already in progress, but once
// that call returns no further I/O is issued. Stop never blocks and can
// safely be called multiple times or after the loop has already exited.
func (f *Forwarder) Stop() {
	f.mutex.Lock()
	if !f.stopped {
		f.stopped = true
		close(f.stopChan)
	}
	f.mutex.Unlock()
}

// Join blocks until the copy loop has exited and the owned sides are closed,
// then returns the recorded result: nil when the source reached end-of-data,
// ErrorStopped when the forwarder was stopped, or the I/O error that ended
// the loop. Join can be called multiple times and from multiple goroutines,
// every call returns the same result.
func (f *Forwarder) Join() error {
	<-f.doneChan

	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.result
}

// Running returns whether the copy loop has not yet exited.
func (f *Forwarder) Running() bool {
	select {
	case <-f.doneChan:
		return false
	default:
		return true
	}
}
