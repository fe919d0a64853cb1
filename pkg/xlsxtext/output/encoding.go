package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// EncodeWriter wraps w so that UTF-8 text written to it is transcoded to
// the named encoding (e.g. "shift_jis", "windows-1252"). Close flushes any
// pending bytes; it does not close w.
func EncodeWriter(w io.Writer, name string) (io.WriteCloser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nopWriteCloser{w}, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported output encoding %q: %w", name, err)
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}
