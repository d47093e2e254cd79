package web

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"net/http"
	"sync"
)

// ErrResponseDiscarded is returned by writes to a ResponseBuffer after
// Discard.
var ErrResponseDiscarded = errors.New("web: response discarded")

// ResponseBuffer is an http.ResponseWriter that holds the response in
// memory until Commit. After Discard every write fails.
type ResponseBuffer struct {
	mu        sync.Mutex
	header    http.Header
	status    int
	body      bytes.Buffer
	discarded bool
}

// NewResponseBuffer returns an empty ResponseBuffer.
func NewResponseBuffer() *ResponseBuffer {
	return &ResponseBuffer{header: make(http.Header)}
}

// Header returns the buffered header map. Only the writer's goroutine may
// touch it.
func (b *ResponseBuffer) Header() http.Header {
	return b.header
}

func (b *ResponseBuffer) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.discarded || b.status != 0 {
		return
	}
	b.status = code
}

func (b *ResponseBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.discarded {
		return 0, ErrResponseDiscarded
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// Discard drops everything written so far and rejects later writes.
func (b *ResponseBuffer) Discard() {
	b.mu.Lock()
	b.discarded = true
	b.body.Reset()
	b.mu.Unlock()
}

// Commit copies the headers, status and body to w. The writer must have
// stopped using the buffer.
func (b *ResponseBuffer) Commit(w http.ResponseWriter) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.discarded {
		return ErrResponseDiscarded
	}

	maps.Copy(w.Header(), b.header)
	if b.status == 0 {
		return nil
	}
	w.WriteHeader(b.status)
	_, err := w.Write(b.body.Bytes())
	return err
}

// Buffered returns a copy of c that runs with ctx and writes into buf.
// The copy shares no mutable state with c, so it may outlive the request
// goroutine.
func Buffered(ctx context.Context, c Context, buf *ResponseBuffer) Context {
	bc := &requestContext{
		request:  c.Request().WithContext(ctx),
		response: &ResponseWriter{ResponseWriter: buf, status: http.StatusOK},
		logger:   c.Logger(),
	}
	if rc, ok := c.(*requestContext); ok {
		bc.cookies = rc.cookies
	}
	return bc
}
