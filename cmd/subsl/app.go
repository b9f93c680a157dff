package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/subsl/config"
	"github.com/kbukum/subsl/errors"
	"github.com/kbukum/subsl/logger"
	"github.com/kbukum/subsl/pipeline"
	"github.com/kbukum/subsl/validation"
	"github.com/kbukum/subsl/version"
)

const name = "subsl"

// flagKeys maps flags onto nested config keys.
var flagKeys = map[string]string{
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"no-color":   "logging.no_color",
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringP("needle", "n", "", `byte sequence to split on; Go escapes such as \r\n and \x00 are interpreted`)
	fs.String("needle-hex", "", "needle as hex digits, e.g. 0d0a")
	fs.StringP("input", "i", "", "input file, - for stdin (default -)")
	fs.StringP("output", "o", "", "output file, - for stdout (default -)")
	fs.StringP("format", "f", "", "output format: raw, json or spans (default raw)")
	fs.StringP("delimiter", "d", "", `written after each segment in raw format (default \n)`)
	fs.Bool("stream", false, "split while reading instead of loading the whole input")
	fs.Bool("skip-empty", false, "drop empty segments")
	fs.String("max-segment", "", "longest segment accepted in stream mode, e.g. 4096 or 1MiB (default 64KiB)")
	fs.String("log-level", "", "log level (default warn)")
	fs.String("log-format", "", "log format: console or json (default console)")
	fs.Bool("no-color", false, "disable colored log output")
	fs.String("config", "", "config file (default ./subsl.yml if present)")
	fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [file]\n\nSplits the input on every occurrence of the needle.\n\nFlags:\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// run executes the command and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return errors.ExitOK
		}
		return errors.ExitUsage
	}
	if v, _ := fs.GetBool("version"); v {
		fmt.Fprintln(stdout, name, version.Get())
		return errors.ExitOK
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		// No configured logger yet.
		log := logger.NewWithWriter(&logger.Config{Level: "error", Format: logger.FormatConsole}, name, stderr)
		log.WithError(err).Error("invalid configuration")
		return errors.ExitCode(err)
	}

	logOut := stderr
	if cfg.Logging.Output == "stdout" {
		logOut = stdout
	}
	log := logger.NewWithWriter(&cfg.Logging, name, logOut)

	r := &runner{cfg: cfg, stdin: stdin, stdout: stdout, log: log.WithComponent("runner")}
	if err := r.run(ctx); err != nil {
		fields := map[string]interface{}{}
		if appErr, ok := errors.AsAppError(err); ok {
			fields["code"] = string(appErr.Code)
			for k, v := range appErr.Details {
				fields[k] = v
			}
		}
		log.WithError(err).Error("split failed", fields)
		return errors.ExitCode(err)
	}
	return errors.ExitOK
}

func loadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	v := validation.New()
	v.Custom(fs.NArg() <= 1, "input", "at most one input file may be given")
	if fs.NArg() == 1 && fs.Changed("input") {
		v.AddError("input", "give the input either as --input or as an argument, not both")
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	configFile, _ := fs.GetString("config")
	var cfg config.Config
	if err := config.LoadConfig(name, &cfg,
		config.WithConfigFile(configFile),
		config.WithFlagSet(fs, flagKeys),
	); err != nil {
		return nil, errors.InvalidInput("config", "failed to load configuration").WithCause(err)
	}
	if fs.NArg() == 1 {
		cfg.Input = fs.Arg(0)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type runner struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	log    *logger.Logger
}

func (r *runner) run(ctx context.Context) error {
	needle, err := r.cfg.NeedleBytes()
	if err != nil {
		return err
	}
	delimiter, err := r.cfg.DelimiterBytes()
	if err != nil {
		return err
	}
	maxSegment, err := r.cfg.MaxSegmentBytes()
	if err != nil {
		return err
	}
	if len(needle) == 0 {
		r.log.Warn("empty needle; the input is emitted as a single segment")
	}

	in, closeIn, err := r.openInput()
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := r.openOutput()
	if err != nil {
		return err
	}

	start := time.Now()
	var src *pipeline.Pipeline[pipeline.Segment[byte]]
	if r.cfg.Stream {
		src = pipeline.Stream(in, needle, maxSegment)
	} else {
		data, err := io.ReadAll(in)
		if err != nil {
			closeOut()
			return errors.IO("read input", err).WithDetail(logger.FieldInput, r.cfg.Input)
		}
		src = pipeline.Segments(data, needle)
	}
	if r.cfg.SkipEmpty {
		src = pipeline.Filter(src, func(s pipeline.Segment[byte]) bool { return !s.Span.Empty() })
	}

	var segments, size int
	counted := pipeline.Tap(src, func(_ context.Context, s pipeline.Segment[byte]) error {
		segments++
		size += len(s.Data)
		return nil
	})

	sw := newSegmentWriter(r.cfg.Format, out, delimiter)
	err = sw.Write(ctx, counted)
	if flushErr := sw.Flush(); flushErr != nil && err == nil {
		err = errors.IO("write output", flushErr)
	}
	if closeErr := closeOut(); closeErr != nil && err == nil {
		err = errors.IO("close output", closeErr)
	}

	switch {
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.New(errors.ErrCodeInternal, "split interrupted").WithCause(err)
	case err != nil:
		return errors.IO("read input", err).WithDetail(logger.FieldInput, r.cfg.Input)
	}

	r.log.Info("split complete", logger.Fields(
		logger.FieldInput, r.cfg.Input,
		logger.FieldFormat, r.cfg.Format,
		logger.FieldNeedleLen, len(needle),
		logger.FieldSegments, segments,
		logger.FieldBytes, size,
	), logger.DurationFields("split", time.Since(start)))
	return nil
}

func (r *runner) openInput() (io.Reader, func(), error) {
	if r.cfg.Input == config.StdStream {
		return r.stdin, func() {}, nil
	}
	f, err := os.Open(r.cfg.Input)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, nil, errors.NotFound("input file", r.cfg.Input).WithCause(err)
	}
	if err != nil {
		return nil, nil, errors.IO("open input", err).WithDetail(logger.FieldInput, r.cfg.Input)
	}
	return f, func() { _ = f.Close() }, nil
}

func (r *runner) openOutput() (io.Writer, func() error, error) {
	if r.cfg.Output == config.StdStream {
		return r.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(r.cfg.Output)
	if err != nil {
		return nil, nil, errors.IO("create output", err).WithDetail("output", r.cfg.Output)
	}
	return f, f.Close, nil
}
