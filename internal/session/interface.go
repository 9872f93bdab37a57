package session

import "context"

// Handler consumes one raw text record. Returning an error aborts the
// stream.
type Handler func(raw string) error

// Source is an acquisition backend: a lazy, unbounded, non-restartable
// sequence of raw text records. Stream blocks, invoking handle once per
// record in arrival order with at most one record in flight, and returns
// when the source is exhausted, the context is cancelled, or handle fails.
type Source interface {
	Stream(ctx context.Context, handle Handler) error
}

// Sink consumes one formatted measurement per record.
type Sink interface {
	Emit(formatted string) error
}
