// Package logutil provides loggers that write to a shared sink. The sink
// discards everything until SetOutput is called.
package logutil

import (
	"io"
	"log"
	"sync"
)

var (
	mu  sync.Mutex
	out io.Writer = io.Discard
)

type sinkWriter struct{}

func (sinkWriter) Write(p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	return out.Write(p)
}

// GetLogger returns a logger with the given prefix writing to the shared
// sink.
func GetLogger(prefix string) *log.Logger {
	return log.New(sinkWriter{}, prefix, log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix)
}

// SetOutput redirects every logger obtained from GetLogger. A nil writer
// discards.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	out = w
}
