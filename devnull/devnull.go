// Package devnull provides a null device file-like object. Reads see
// end-of-data right away, writes succeed and are discarded. When a real
// descriptor is needed the platform null device is opened lazily.
package devnull

import (
	"io"
	"os"
	"sync"
)

// DevNull is a null stream. The zero value is ready for use.
type DevNull struct {
	mutex sync.Mutex
	file  *os.File
}

// Read implements io.Reader and always returns end-of-data.
func (d *DevNull) Read(p []byte) (int, error) {
	return 0, io.EOF
}

// Write implements io.Writer and discards the data.
func (d *DevNull) Write(p []byte) (int, error) {
	return len(p), nil
}

// Seek implements io.Seeker. The position is always zero.
func (d *DevNull) Seek(offset int64, whence int) (int64, error) {
	return 0, nil
}

// File returns an *os.File for the platform null device, opening it on the
// first call. The same file is returned until Close.
func (d *DevNull) File() (*os.File, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.file == nil {
		file, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
		if err != nil {
			return nil, err
		}
		d.file = file
	}

	return d.file, nil
}

// Fd returns the descriptor of the lazily opened null device.
func (d *DevNull) Fd() (uintptr, error) {
	file, err := d.File()
	if err != nil {
		return 0, err
	}

	return file.Fd(), nil
}

// Close closes the lazily opened null device, if any. The DevNull itself
// stays usable and a later File call opens the device again. Close can be
// called multiple times.
func (d *DevNull) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.file == nil {
		return nil
	}

	err := d.file.Close()
	d.file = nil

	return err
}
