// Package bytereader provides a read-only file-like view over a byte slice.
// Unlike bytes.NewReader it supports being closed and never copies the data.
package bytereader

import (
	"errors"
	"io"
)

var (
	// ErrorClosed is returned when the reader is used after Close
	ErrorClosed = errors.New("The BytesReader was closed")
)

// BytesReader reads from a byte slice it does not own. It is not safe for
// concurrent use, a single accessor is assumed.
type BytesReader struct {
	data []byte
	pos  int

	closed bool
}

// New creates a BytesReader over the given slice. The slice is referenced,
// not copied, so the caller must not modify it while reading.
func New(data []byte) *BytesReader {
	return &BytesReader{data: data}
}

// Read implements io.Reader. At end-of-data it returns 0, io.EOF.
func (b *BytesReader) Read(p []byte) (int, error) {
	if b.closed {
		return 0, ErrorClosed
	}

	if b.pos >= len(b.data) {
		return 0, io.EOF
	}

	n := copy(p, b.data[b.pos:])
	b.pos += n

	return n, nil
}

// ReadAt implements io.ReaderAt. It does not use or change the position.
func (b *BytesReader) ReadAt(p []byte, off int64) (int, error) {
	if b.closed {
		return 0, ErrorClosed
	}

	if off < 0 || off >= int64(len(b.data)) {
		return 0, io.EOF
	}

	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// WriteTo implements io.WriterTo. It writes everything from the current
// position to the end and advances the position accordingly.
func (b *BytesReader) WriteTo(w io.Writer) (int64, error) {
	if b.closed {
		return 0, ErrorClosed
	}

	remaining := len(b.data) - b.pos
	if remaining <= 0 {
		return 0, nil
	}

	n, err := w.Write(b.data[b.pos:])
	b.pos += n

	if err == nil && n < remaining {
		err = io.ErrShortWrite
	}

	return int64(n), err
}

// Seek implements io.Seeker. Positions outside the data are clamped into
// range rather than rejected.
func (b *BytesReader) Seek(offset int64, whence int) (int64, error) {
	if b.closed {
		return 0, ErrorClosed
	}

	pos := offset
	switch whence {
	case io.SeekCurrent:
		pos += int64(b.pos)
	case io.SeekEnd:
		pos += int64(len(b.data))
	}

	if pos < 0 {
		pos = 0
	}
	if pos > int64(len(b.data)) {
		pos = int64(len(b.data))
	}

	b.pos = int(pos)

	return pos, nil
}

// Tell returns the current position.
func (b *BytesReader) Tell() int64 {
	return int64(b.pos)
}

// Len returns the number of unread bytes.
func (b *BytesReader) Len() int {
	if b.closed || b.pos >= len(b.data) {
		return 0
	}

	return len(b.data) - b.pos
}

// Size returns the total length of the wrapped slice.
func (b *BytesReader) Size() int64 {
	return int64(len(b.data))
}

// Close releases the reference to the slice. Further reads fail with
// ErrorClosed. Close can be called multiple times.
func (b *BytesReader) Close() error {
	b.data = nil
	b.closed = true

	return nil
}
