package push

import (
	"bytes"
	"io"
	"strconv"
	"time"
)

// max size of a single server-sent event
const maxEventSize = 1 << 20

// longest line worth inspecting for a retry field
const maxRetryLine = 32

var retryPrefix = []byte("retry:")

// retryTap passes the event stream through and remembers the last "retry"
// field, which sse.Read does not report.
type retryTap struct {
	r     io.Reader
	line  []byte
	long  bool
	retry time.Duration
}

func (t *retryTap) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	for _, b := range p[:n] {
		if b == '\n' || b == '\r' {
			t.endLine()
			continue
		}
		if len(t.line) < maxRetryLine {
			t.line = append(t.line, b)
		} else {
			t.long = true
		}
	}
	return n, err
}

func (t *retryTap) endLine() {
	defer func() {
		t.line = t.line[:0]
		t.long = false
	}()

	if t.long || !bytes.HasPrefix(t.line, retryPrefix) {
		return
	}
	value := bytes.TrimPrefix(t.line[len(retryPrefix):], []byte(" "))
	if ms, err := strconv.Atoi(string(value)); err == nil && ms >= 0 {
		t.retry = time.Duration(ms) * time.Millisecond
	}
}
