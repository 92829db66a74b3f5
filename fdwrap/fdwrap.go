// Package fdwrap exposes a real file descriptor for an in-process stream
// object that has none. It creates an OS pipe, hands one end to the caller
// (typically to be used as a subprocess standard stream) and runs a
// forwarder goroutine that copies bytes between the other end and the
// wrapped object.
package fdwrap

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/BertoldVdb/go-ioutils/forwarder"
)

// Mode selects the direction of an FDWrap.
type Mode int

const (
	// ModeRead exposes a descriptor that can be read. The wrapped object must
	// implement io.Reader and provides the bytes.
	ModeRead Mode = iota

	// ModeWrite exposes a descriptor that can be written. The wrapped object
	// must implement io.Writer and receives the bytes.
	ModeWrite
)

var (
	// ErrorInvalidMode is returned when the mode is not exactly ModeRead or
	// ModeWrite, or when the wrapped object does not support the requested
	// direction.
	ErrorInvalidMode = errors.New("The mode must be ModeRead with an io.Reader or ModeWrite with an io.Writer")

	// ErrorClosed is returned when the exposed pipe end was already closed.
	// Getting it from CloseFile is harmless.
	ErrorClosed = errors.New("The exposed pipe end was already closed")

	// ErrorNotSeekable is returned from Seek. An FDWrap is strictly
	// sequential.
	ErrorNotSeekable = errors.New("FDWrap does not support seeking")

	// ErrorNotSupported is returned by platform specific operations on
	// platforms that do not implement them.
	ErrorNotSupported = errors.New("The operation is not supported on this platform")
)

// FDWrap wraps a stream object with a file descriptor taken from a pipe.
//
// In read mode a forwarder copies from the wrapped object into the pipe and
// the exposed end is the pipe's read end. In write mode the exposed end is
// the pipe's write end and the forwarder copies from the pipe into the
// wrapped object. Each pipe end has exactly one owner: the forwarder closes
// its private end when its loop exits, the FDWrap closes the exposed end in
// CloseFile, Join or Detach. The wrapped object itself is only ever closed
// by Close, never by Join or Detach.
//
// While the FDWrap is active the forwarder is the only user of the wrapped
// object. The caller must not touch it until Join or Detach returned it.
type FDWrap struct {
	mutex sync.Mutex

	mode    Mode
	orig    interface{}
	file    *os.File
	forward *forwarder.Forwarder

	fileClosed bool
}

// New creates an FDWrap around the given stream object and starts the
// forwarder. In ModeRead the stream must implement io.Reader, in ModeWrite
// it must implement io.Writer, otherwise ErrorInvalidMode is returned.
func New(stream interface{}, mode Mode) (*FDWrap, error) {
	return NewWithLogger(stream, mode, nil)
}

// NewWithLogger is like New but logs the forwarder lifecycle to the given
// logger. A nil logger disables logging.
func NewWithLogger(stream interface{}, mode Mode, logger *logrus.Entry) (*FDWrap, error) {
	w := &FDWrap{
		mode: mode,
		orig: stream,
	}

	switch mode {
	case ModeRead:
		src, ok := stream.(io.Reader)
		if !ok {
			return nil, ErrorInvalidMode
		}

		pipeRead, pipeWrite, err := os.Pipe()
		if err != nil {
			return nil, err
		}

		w.file = pipeRead
		w.forward = forwarder.NewWithLogger(src, pipeWrite, false, true, logger)

	case ModeWrite:
		dst, ok := stream.(io.Writer)
		if !ok {
			return nil, ErrorInvalidMode
		}

		pipeRead, pipeWrite, err := os.Pipe()
		if err != nil {
			return nil, err
		}

		w.file = pipeWrite
		w.forward = forwarder.NewWithLogger(pipeRead, dst, true, false, logger)

	default:
		return nil, ErrorInvalidMode
	}

	return w, nil
}

// File returns the exposed pipe end. It can be assigned to an exec.Cmd
// standard stream or put in its ExtraFiles. After the exposed end was closed
// ErrorClosed is returned.
func (w *FDWrap) File() (*os.File, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.fileClosed {
		return nil, ErrorClosed
	}

	return w.file, nil
}

// Fd returns the descriptor of the exposed pipe end. After the exposed end
// was closed ErrorClosed is returned.
func (w *FDWrap) Fd() (uintptr, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.fileClosed {
		return 0, ErrorClosed
	}

	return w.file.Fd(), nil
}

// CloseFile closes the exposed pipe end. In write mode this is what makes
// the forwarder see end-of-data, so it must be called (directly or via Join)
// once the descriptor is no longer needed. Calling it again returns
// ErrorClosed, which is harmless.
func (w *FDWrap) CloseFile() error {
	w.mutex.Lock()
	if w.fileClosed {
		w.mutex.Unlock()
		return ErrorClosed
	}
	w.fileClosed = true
	w.mutex.Unlock()

	return w.file.Close()
}

// Join closes the exposed pipe end, waits for the forwarder to finish and
// returns the wrapped stream object together with the forwarding result (nil
// on normal end-of-data, forwarder.ErrorStopped after Detach, or the I/O
// error that ended the loop). The wrapped object is never closed by Join.
// Join can be called multiple times, every call returns the same values.
func (w *FDWrap) Join() (interface{}, error) {
	w.CloseFile()

	err := w.forward.Join()

	return w.orig, err
}

// Detach stops the forwarder, closes the exposed pipe end and returns the
// wrapped stream object without closing it and without waiting for the
// forwarder to exit. Use it to reclaim the object early. Join can still be
// called afterwards to wait for the forwarder.
func (w *FDWrap) Detach() interface{} {
	w.forward.Stop()
	w.CloseFile()

	return w.orig
}

// Close detaches and also closes the wrapped stream object, provided it
// implements io.Closer. This is the full teardown for callers that are done
// with everything.
func (w *FDWrap) Close() error {
	orig := w.Detach()

	if c, ok := orig.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// Mode returns the direction the FDWrap was created with.
func (w *FDWrap) Mode() Mode {
	return w.mode
}

// Readable reports whether the FDWrap was created in read mode. This
// reflects the FDWrap's own direction, not the intrinsic direction of the
// exposed pipe end.
func (w *FDWrap) Readable() bool {
	return w.mode == ModeRead
}

// Writable reports whether the FDWrap was created in write mode.
func (w *FDWrap) Writable() bool {
	return w.mode == ModeWrite
}

// Seekable always returns false.
func (w *FDWrap) Seekable() bool {
	return false
}

// IsTerminal always returns false.
func (w *FDWrap) IsTerminal() bool {
	return false
}

// Seek always fails with ErrorNotSeekable.
func (w *FDWrap) Seek(offset int64, whence int) (int64, error) {
	return 0, ErrorNotSeekable
}
