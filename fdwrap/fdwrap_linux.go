package fdwrap

import (
	"golang.org/x/sys/unix"
)

// SetPipeCapacity changes the kernel buffer size of the pipe backing this
// FDWrap. The kernel may round the value up. Values above the system limit
// (/proc/sys/fs/pipe-max-size for unprivileged users) fail with EPERM.
func (w *FDWrap) SetPipeCapacity(bytes int) error {
	file, err := w.File()
	if err != nil {
		return err
	}

	_, err = unix.FcntlInt(file.Fd(), unix.F_SETPIPE_SZ, bytes)
	return err
}

// PipeCapacity returns the current kernel buffer size of the pipe backing
// this FDWrap.
func (w *FDWrap) PipeCapacity() (int, error) {
	file, err := w.File()
	if err != nil {
		return 0, err
	}

	return unix.FcntlInt(file.Fd(), unix.F_GETPIPE_SZ, 0)
}
