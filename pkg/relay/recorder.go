package relay

import (
	"context"
	"time"
)

// Attempt describes one submission for auditing. Field values are never
// recorded.
type Attempt struct {
	ID       string
	Endpoint string
	Subject  string
	Fields   int
	Status   int
	Err      string
	At       time.Time
	Duration time.Duration
}

// Succeeded reports whether the relay accepted the attempt.
func (a Attempt) Succeeded() bool {
	return a.Err == "" && a.Status >= 200 && a.Status < 300
}

// Recorder is notified after every attempt. Errors are logged and otherwise
// ignored.
type Recorder interface {
	Record(ctx context.Context, attempt Attempt) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, attempt Attempt) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, attempt Attempt) error {
	return f(ctx, attempt)
}
