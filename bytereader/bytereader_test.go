package bytereader

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"testing"
)

var testMessage = []byte("hello world!\ngoodbye world!")

func TestReadAll(t *testing.T) {
	b := New(testMessage)

	got, err := ioutil.ReadAll(b)
	if err != nil {
		t.Error("ReadAll failed", err)
	}
	if !bytes.Equal(got, testMessage) {
		t.Error("Read data does not match", got)
	}

	/* At end-of-data every read returns EOF */
	var tmp [4]byte
	if n, err := b.Read(tmp[:]); n != 0 || err != io.EOF {
		t.Error("Read at end-of-data did not return EOF", n, err)
	}

	if b.Len() != 0 || b.Tell() != int64(len(testMessage)) {
		t.Error("Wrong position after reading everything", b.Len(), b.Tell())
	}
}

func TestSeek(t *testing.T) {
	b := New(testMessage)

	readLines := func() [][]byte {
		var lines [][]byte
		scanner := bufio.NewScanner(b)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			lines = append(lines, line)
		}
		return lines
	}

	if len(readLines()) != 2 {
		t.Error("Wrong number of lines")
	}

	if pos, _ := b.Seek(0, io.SeekStart); pos != 0 {
		t.Error("Seek to start returned wrong position", pos)
	}
	if len(readLines()) != 2 {
		t.Error("Wrong number of lines after rewind")
	}

	if pos, _ := b.Seek(0, io.SeekEnd); pos != int64(len(testMessage)) {
		t.Error("Seek to end returned wrong position", pos)
	}
	if len(readLines()) != 0 {
		t.Error("Lines available after seeking to the end")
	}

	b.Seek(-2, io.SeekEnd)
	lines := readLines()
	if len(lines) != 1 || !bytes.Equal(lines[0], []byte("d!")) {
		t.Error("Wrong data after relative seek", lines)
	}

	/* Out of range positions are clamped */
	if pos, _ := b.Seek(-100, io.SeekStart); pos != 0 {
		t.Error("Negative seek was not clamped", pos)
	}
	if pos, _ := b.Seek(100000, io.SeekStart); pos != int64(len(testMessage)) {
		t.Error("Seek past the end was not clamped", pos)
	}
}

func TestReadAt(t *testing.T) {
	b := New(testMessage)

	var tmp [5]byte
	n, err := b.ReadAt(tmp[:], 6)
	if n != 5 || err != nil {
		t.Error("ReadAt failed", n, err)
	}
	if !bytes.Equal(tmp[:], []byte("world")) {
		t.Error("ReadAt returned wrong data", tmp[:])
	}

	if b.Tell() != 0 {
		t.Error("ReadAt changed the position")
	}

	if _, err := b.ReadAt(tmp[:], int64(len(testMessage))); err != io.EOF {
		t.Error("ReadAt past the end did not return EOF", err)
	}

	if n, err := b.ReadAt(tmp[:], int64(len(testMessage))-2); n != 2 || err != io.EOF {
		t.Error("Short ReadAt at the end is wrong", n, err)
	}
}

func TestWriteTo(t *testing.T) {
	b := New(testMessage)
	b.Seek(6, io.SeekStart)

	var dst bytes.Buffer
	n, err := b.WriteTo(&dst)
	if err != nil {
		t.Error("WriteTo failed", err)
	}
	if n != int64(len(testMessage)-6) || !bytes.Equal(dst.Bytes(), testMessage[6:]) {
		t.Error("WriteTo copied wrong data", n)
	}

	if n, err := b.WriteTo(&dst); n != 0 || err != nil {
		t.Error("WriteTo at end-of-data is wrong", n, err)
	}
}

func TestClose(t *testing.T) {
	b := New(testMessage)

	if err := b.Close(); err != nil {
		t.Error("Close failed", err)
	}
	if err := b.Close(); err != nil {
		t.Error("Repeated Close failed", err)
	}

	var tmp [4]byte
	if _, err := b.Read(tmp[:]); err != ErrorClosed {
		t.Error("Read after Close did not return ErrorClosed", err)
	}
	if _, err := b.Seek(0, io.SeekStart); err != ErrorClosed {
		t.Error("Seek after Close did not return ErrorClosed", err)
	}
	if _, err := b.ReadAt(tmp[:], 0); err != ErrorClosed {
		t.Error("ReadAt after Close did not return ErrorClosed", err)
	}
}
