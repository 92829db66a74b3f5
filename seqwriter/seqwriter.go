// Package seqwriter provides a sink that collects every written chunk in a
// sequence. It is useful to capture the output of a writer-driven producer,
// for example the write mode of fdwrap, without reassembling framing that
// the producer already provided.
package seqwriter

import (
	"bytes"
	"errors"
	"sync"
)

var (
	// ErrorClosed is returned when writing to a closed SeqWriter
	ErrorClosed = errors.New("The SeqWriter was closed")

	// ErrorNotSeekable is returned from Seek, a SeqWriter is append-only
	ErrorNotSeekable = errors.New("The SeqWriter does not support seeking")
)

// SeqWriter appends every written chunk to an internal sequence. Writes copy
// the chunk, so the caller may reuse its buffer. All methods are safe for
// concurrent use.
type SeqWriter struct {
	mutex sync.Mutex

	chunks    [][]byte
	maxChunks int

	pos    int64
	closed bool
}

// New creates a SeqWriter that retains every chunk.
func New() *SeqWriter {
	return &SeqWriter{}
}

// NewBounded creates a SeqWriter that retains only the newest maxChunks
// chunks. Older chunks are dropped, but Tell keeps counting everything that
// was ever written. A maxChunks of zero or less means unbounded.
func NewBounded(maxChunks int) *SeqWriter {
	return &SeqWriter{maxChunks: maxChunks}
}

// Write implements io.Writer by appending a copy of p to the sequence.
func (s *SeqWriter) Write(p []byte) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return 0, ErrorClosed
	}

	chunk := make([]byte, len(p))
	copy(chunk, p)

	s.chunks = append(s.chunks, chunk)
	if s.maxChunks > 0 && len(s.chunks) > s.maxChunks {
		drop := len(s.chunks) - s.maxChunks
		s.chunks = append(s.chunks[:0], s.chunks[drop:]...)
	}

	s.pos += int64(len(p))

	return len(p), nil
}

// Tell returns the total number of bytes written, which can exceed the
// amount currently retained when the writer is bounded.
func (s *SeqWriter) Tell() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.pos
}

// Chunks returns the retained chunks in write order. The returned slice is a
// snapshot, but the chunks themselves are not copied again.
func (s *SeqWriter) Chunks() [][]byte {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([][]byte, len(s.chunks))
	copy(out, s.chunks)

	return out
}

// Bytes returns the retained chunks joined into a single slice.
func (s *SeqWriter) Bytes() []byte {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return bytes.Join(s.chunks, nil)
}

// Len returns the number of retained chunks.
func (s *SeqWriter) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.chunks)
}

// Seek always fails, a SeqWriter is append-only.
func (s *SeqWriter) Seek(offset int64, whence int) (int64, error) {
	return 0, ErrorNotSeekable
}

// Close releases the retained chunks. Further writes fail with ErrorClosed.
// Close can be called multiple times.
func (s *SeqWriter) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.chunks = nil
	s.closed = true

	return nil
}
