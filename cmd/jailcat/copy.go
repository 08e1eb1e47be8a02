package main

import (
	"encoding/hex"
	"io"
)

// The wrappers hide os.File's ReadFrom and WriteTo so io.CopyBuffer can't
// reach for splice, sendfile or copy_file_range, none of which stage 2
// allows.
type plainReader struct{ io.Reader }

type plainWriter struct{ io.Writer }

func copyInput(dst io.Writer, src io.Reader, bufSize int, dump bool) error {
	w := io.Writer(plainWriter{dst})
	var dumper io.WriteCloser
	if dump {
		dumper = hex.Dumper(w)
		w = dumper
	}
	if _, err := io.CopyBuffer(w, plainReader{src}, make([]byte, bufSize)); err != nil {
		return err
	}
	if dumper != nil {
		return dumper.Close()
	}
	return nil
}
