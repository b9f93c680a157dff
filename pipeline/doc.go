// Package pipeline provides composable, pull-based stages over split
// segments.
//
// Pipelines are lazy: no work happens until values are pulled via Collect or
// ForEach. Each stage pulls from the previous stage on demand, so a splitter
// is advanced exactly once per segment consumed downstream.
//
// Segments, FromSlice and FromFunc restart on every run. Stream and From
// consume their source: a second run fails with ErrConsumed.
//
// # Sources
//
//   - Segments: split an in-memory haystack with split.Splitter
//   - Stream: split an io.Reader with split.NewScanner
//   - FromSlice, FromFunc: rerunnable generic sources
//   - From: single-run source over an existing Iterator
//
// # Operators
//
//   - Map: transform each value
//   - FlatMap: transform each value into multiple values
//   - SplitEach: re-split every upstream chunk on a needle
//   - Filter: keep values matching a predicate
//   - Tap: side-effect without altering the value (logging, counting)
//
// # Usage
//
//	segs := pipeline.Segments(data, []byte("\r\n"))
//	nonEmpty := pipeline.Filter(segs, func(s pipeline.Segment[byte]) bool {
//	    return !s.Span.Empty()
//	})
//	err := pipeline.ForEach(ctx, nonEmpty, write)
package pipeline
