package fdwrap

import (
	"testing"

	"github.com/BertoldVdb/go-ioutils/bytereader"
)

func TestPipeCapacity(t *testing.T) {
	wrap, err := New(bytereader.New(nil), ModeRead)
	if err != nil {
		t.Fatal("New failed", err)
	}
	defer joinWithTimeout(t, wrap)

	if err := wrap.SetPipeCapacity(128 * 1024); err != nil {
		t.Error("SetPipeCapacity failed", err)
	}

	capacity, err := wrap.PipeCapacity()
	if err != nil {
		t.Error("PipeCapacity failed", err)
	}
	if capacity < 128*1024 {
		t.Error("Pipe capacity was not raised", capacity)
	}

	wrap.CloseFile()
	if err := wrap.SetPipeCapacity(64 * 1024); err != ErrorClosed {
		t.Error("SetPipeCapacity on a closed FDWrap did not return ErrorClosed", err)
	}
}
