package ioutil_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"braces.dev/errtrace"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httphdr/internal/ioutil"
)

var errWriteFailed = errors.New("write failed")

type errorWriter struct {
	failAfter int
	written   int
}

func (ew *errorWriter) Write(p []byte) (n int, err error) {
	if ew.written >= ew.failAfter {
		return 0, errtrace.Wrap(errWriteFailed)
	}
	n = len(p)
	if ew.written+n > ew.failAfter {
		n = ew.failAfter - ew.written
	}
	ew.written += n
	if n < len(p) {
		return n, errtrace.Wrap(errWriteFailed)
	}
	return n, nil
}

func TestCountingWriter_List(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cw := ioutil.NewCountingWriter(&buf)
	for i, s := range []string{"gzip", "deflate", "br"} {
		cw.Sep(i, ", ").WriteString(s) //nolint:errcheck
	}

	num, err := cw.Result()
	if err != nil {
		t.Fatalf("cw.Result() error = %v, want nil", err)
	}
	if got, want := buf.String(), "gzip, deflate, br"; got != want {
		t.Errorf("buf.String() = %q, want %q", got, want)
	}
	if num != buf.Len() {
		t.Errorf("cw.Result() num = %d, want %d", num, buf.Len())
	}
}

func TestCountingWriter_Call(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cw := ioutil.GetCountingWriter(&buf)
	defer ioutil.FreeCountingWriter(cw)

	cw.Fprint("max-age", "=", 120)
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(io.WriteString(w, ", public"))
	})

	num, err := cw.Result()
	if err != nil {
		t.Fatalf("cw.Result() error = %v, want nil", err)
	}
	if got, want := buf.String(), "max-age=120, public"; got != want {
		t.Errorf("buf.String() = %q, want %q", got, want)
	}
	if num != len("max-age=120, public") {
		t.Errorf("cw.Result() num = %d, want %d", num, len("max-age=120, public"))
	}
}

func TestCountingWriter_StopsAfterError(t *testing.T) {
	t.Parallel()

	ew := &errorWriter{failAfter: 4}
	cw := ioutil.NewCountingWriter(ew)

	cw.WriteString("no-cache")   //nolint:errcheck
	cw.WriteString(", no-store") //nolint:errcheck
	cw.Call(func(w io.Writer) (int, error) {
		t.Error("Call() invoked after a failed write")
		return 0, nil
	})

	num, err := cw.Result()
	if diff := cmp.Diff(err, errWriteFailed, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("cw.Result() error = %v, want %v\ndiff (-got +want):\n%v", err, errWriteFailed, diff)
	}
	if num != 4 {
		t.Errorf("cw.Result() num = %d, want 4", num)
	}
}
