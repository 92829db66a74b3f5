// +build !linux

package fdwrap

// SetPipeCapacity is only implemented on Linux.
func (w *FDWrap) SetPipeCapacity(bytes int) error {
	return ErrorNotSupported
}

// PipeCapacity is only implemented on Linux.
func (w *FDWrap) PipeCapacity() (int, error) {
	return 0, ErrorNotSupported
}
