package main

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/kbukum/subsl/config"
	"github.com/kbukum/subsl/errors"
	"github.com/kbukum/subsl/pipeline"
)

// segmentWriter drains a segment pipeline into one output format.
// Failed writes are reported as IO_ERROR; any other error comes from the
// pipeline itself.
type segmentWriter interface {
	Write(ctx context.Context, src *pipeline.Pipeline[pipeline.Segment[byte]]) error
	Flush() error
}

func newSegmentWriter(format string, w io.Writer, delimiter []byte) segmentWriter {
	bw := bufio.NewWriter(w)
	switch format {
	case config.FormatJSON:
		return &jsonWriter{w: bw, enc: json.NewEncoder(bw)}
	case config.FormatSpans:
		return &spansWriter{w: bw}
	default:
		return &rawWriter{w: bw, delimiter: delimiter}
	}
}

func writeErr(err error) error {
	if err == nil {
		return nil
	}
	return errors.IO("write output", err)
}

// rawWriter writes each segment followed by the delimiter.
type rawWriter struct {
	w         *bufio.Writer
	delimiter []byte
}

func (rw *rawWriter) Write(ctx context.Context, src *pipeline.Pipeline[pipeline.Segment[byte]]) error {
	return pipeline.ForEach(ctx, src, func(_ context.Context, seg pipeline.Segment[byte]) error {
		if _, err := rw.w.Write(seg.Data); err != nil {
			return writeErr(err)
		}
		_, err := rw.w.Write(rw.delimiter)
		return writeErr(err)
	})
}

func (rw *rawWriter) Flush() error { return rw.w.Flush() }

// segmentRecord is one JSON Lines record. Invalid UTF-8 in the segment is
// replaced with U+FFFD; use the spans format for exact byte offsets.
type segmentRecord struct {
	Index   int    `json:"index"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Segment string `json:"segment"`
}

func newSegmentRecord(_ context.Context, seg pipeline.Segment[byte]) (segmentRecord, error) {
	return segmentRecord{
		Index:   seg.Index,
		Start:   seg.Span.Start,
		End:     seg.Span.End,
		Segment: string(seg.Data),
	}, nil
}

type jsonWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func (jw *jsonWriter) Write(ctx context.Context, src *pipeline.Pipeline[pipeline.Segment[byte]]) error {
	records := pipeline.Map(src, newSegmentRecord)
	return pipeline.ForEach(ctx, records, func(_ context.Context, rec segmentRecord) error {
		return writeErr(jw.enc.Encode(rec))
	})
}

func (jw *jsonWriter) Flush() error { return jw.w.Flush() }

// spansWriter writes "start end" per segment.
type spansWriter struct {
	w   *bufio.Writer
	buf []byte
}

func (sw *spansWriter) Write(ctx context.Context, src *pipeline.Pipeline[pipeline.Segment[byte]]) error {
	return pipeline.ForEach(ctx, src, func(_ context.Context, seg pipeline.Segment[byte]) error {
		sw.buf = strconv.AppendInt(sw.buf[:0], int64(seg.Span.Start), 10)
		sw.buf = append(sw.buf, ' ')
		sw.buf = strconv.AppendInt(sw.buf, int64(seg.Span.End), 10)
		sw.buf = append(sw.buf, '\n')
		_, err := sw.w.Write(sw.buf)
		return writeErr(err)
	})
}

func (sw *spansWriter) Flush() error { return sw.w.Flush() }
