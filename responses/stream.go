// Copyright (c) Openwire Labs. All rights reserved.

package responses

import (
	"context"
	"strings"
	"sync"
)

// ResponseStream provides a pull-based iterator over streaming values.
// It wraps a channel internally but exposes a cleaner API with error
// propagation and cleanup guarantees.
//
// Callers must call Close when done, or use a context with cancellation.
type ResponseStream[T any] struct {
	ch        <-chan T
	errCh     <-chan error
	cancel    context.CancelFunc
	closeOnce sync.Once
	err       error
}

// NewResponseStream creates a ResponseStream by running producer in a goroutine.
// The producer should send values to the channel and return any error.
// The channel is closed automatically when the producer returns.
func NewResponseStream[T any](ctx context.Context, producer func(ctx context.Context, ch chan<- T) error) *ResponseStream[T] {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan T, 1) // small buffer to reduce goroutine blocking
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		if err := producer(ctx, ch); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	return &ResponseStream[T]{
		ch:     ch,
		errCh:  errCh,
		cancel: cancel,
	}
}

// Next returns the next value from the stream.
// ok is false when the stream is exhausted. err is non-nil on failure.
func (s *ResponseStream[T]) Next(ctx context.Context) (val T, ok bool, err error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	case v, open := <-s.ch:
		if !open {
			// Channel closed — check for producer error
			select {
			case e := <-s.errCh:
				s.err = e
			default:
			}
			var zero T
			return zero, false, s.err
		}
		return v, true, nil
	}
}

// Collect drains the entire stream and returns all values.
func (s *ResponseStream[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for {
		val, ok, err := s.Next(ctx)
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, val)
	}
}

// Close cancels the producer and releases resources.
// Safe to call multiple times.
func (s *ResponseStream[T]) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		// Drain remaining items to unblock producer
		for range s.ch {
		}
		// Drain error channel
		select {
		case e := <-s.errCh:
			if s.err == nil {
				s.err = e
			}
		default:
		}
	})
	return nil
}

// Stream wraps a [ResponseStream] of decoded events and reconstructs the
// final [Response] as events pass through. It is a single forward pass:
// events consumed via Next are folded into the reconstruction and cannot be
// replayed.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	inner *ResponseStream[Event]
	agg   aggregator
}

// NewStream wraps a raw event stream.
func NewStream(inner *ResponseStream[Event]) *Stream {
	return &Stream{inner: inner}
}

// Next returns the next streaming event, recording it into the
// reconstruction consumed later by [Stream.Final].
func (s *Stream) Next(ctx context.Context) (Event, bool, error) {
	ev, ok, err := s.inner.Next(ctx)
	if ok {
		s.agg.apply(ev)
	}
	return ev, ok, err
}

// Text drains the stream and returns the concatenated delta text. Only
// response.output_text.delta events contribute; the terminal done/completed
// events repeat text the deltas already carried.
func (s *Stream) Text(ctx context.Context) (string, error) {
	var b strings.Builder
	for {
		ev, ok, err := s.Next(ctx)
		if err != nil {
			return b.String(), err
		}
		if !ok {
			return b.String(), nil
		}
		if delta, ok := DeltaText(ev); ok {
			b.WriteString(delta)
		}
	}
}

// Final drains any remaining events and returns the reconstructed
// [Response], equivalent to the non-streaming result. A stream that ended
// before its terminal event yields the partial reconstruction.
func (s *Stream) Final(ctx context.Context) (*Response, error) {
	for {
		_, ok, err := s.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return s.agg.response(), nil
}

// Completed reports whether a terminal completed/failed event has been seen.
func (s *Stream) Completed() bool { return s.agg.completed }

// Close releases the underlying stream resources.
func (s *Stream) Close() error {
	return s.inner.Close()
}
