package config

import (
	"bufio"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/subsl/errors"
	"github.com/kbukum/subsl/logger"
	"github.com/kbukum/subsl/util"
	"github.com/kbukum/subsl/validation"
)

// Output formats.
const (
	FormatRaw   = "raw"
	FormatJSON  = "json"
	FormatSpans = "spans"
)

// StdStream names standard input or output in Input and Output.
const StdStream = "-"

// Config is the configuration of the subsl command.
//
// Needle and Delimiter accept Go escape sequences (\r, \n, \t, \xNN,
// \uNNNN, \\). NeedleHex, when set, replaces Needle.
type Config struct {
	Needle     string        `yaml:"needle" mapstructure:"needle"`
	NeedleHex  string        `yaml:"needle_hex" mapstructure:"needle_hex" json:"needle_hex" validate:"omitempty,excluded_with=Needle,hexadecimal"`
	Input      string        `yaml:"input" mapstructure:"input" json:"input" validate:"required"`
	Output     string        `yaml:"output" mapstructure:"output" json:"output" validate:"required"`
	Format     string        `yaml:"format" mapstructure:"format" json:"format" validate:"oneof=raw json spans"`
	Delimiter  string        `yaml:"delimiter" mapstructure:"delimiter" json:"delimiter"`
	Stream     bool          `yaml:"stream" mapstructure:"stream" json:"stream"`
	SkipEmpty  bool          `yaml:"skip_empty" mapstructure:"skip_empty" json:"skip_empty"`
	MaxSegment string        `yaml:"max_segment" mapstructure:"max_segment" json:"max_segment"`
	Logging    logger.Config `yaml:"logging" mapstructure:"logging" json:"logging"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Input == "" {
		c.Input = StdStream
	}
	if c.Output == "" {
		c.Output = StdStream
	}
	if c.Format == "" {
		c.Format = FormatRaw
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the configuration and the needle and delimiter encodings.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidInput("logging", err.Error()).WithCause(err)
	}
	if _, err := c.NeedleBytes(); err != nil {
		return err
	}
	if _, err := c.DelimiterBytes(); err != nil {
		return err
	}
	if _, err := c.MaxSegmentBytes(); err != nil {
		return err
	}
	return nil
}

// NeedleBytes decodes the needle. An empty needle is valid.
func (c *Config) NeedleBytes() ([]byte, error) {
	if c.NeedleHex != "" {
		h := strings.TrimPrefix(strings.TrimPrefix(c.NeedleHex, "0x"), "0X")
		b, err := hex.DecodeString(h)
		if err != nil {
			return nil, errors.InvalidFormat("needle_hex", "an even number of hex digits").
				WithCause(err).WithDetail("value", c.NeedleHex)
		}
		return b, nil
	}
	b, err := Unescape(c.Needle)
	if err != nil {
		return nil, errors.InvalidFormat("needle", "Go escape sequences").
			WithCause(err).WithDetail("value", c.Needle)
	}
	return b, nil
}

// DelimiterBytes decodes the output delimiter used by the raw format.
// An unset delimiter means a newline.
func (c *Config) DelimiterBytes() ([]byte, error) {
	if c.Delimiter == "" {
		return []byte("\n"), nil
	}
	b, err := Unescape(c.Delimiter)
	if err != nil {
		return nil, errors.InvalidFormat("delimiter", "Go escape sequences").
			WithCause(err).WithDetail("value", c.Delimiter)
	}
	return b, nil
}

// MaxSegmentBytes parses the longest segment accepted in stream mode.
// An unset value means bufio.MaxScanTokenSize.
func (c *Config) MaxSegmentBytes() (int, error) {
	n, err := util.ParseSize(c.MaxSegment, bufio.MaxScanTokenSize)
	if err != nil {
		return 0, errors.InvalidFormat("max_segment", "a size such as 4096, 64KB or 1MiB").
			WithCause(err).WithDetail("value", c.MaxSegment)
	}
	if n == 0 || n > maxSegmentLimit {
		return 0, errors.InvalidInput("max_segment", "must be between 1 byte and 1GiB").
			WithDetail("value", c.MaxSegment)
	}
	return int(n), nil
}

const maxSegmentLimit = 1 << 30

// Unescape interprets Go escape sequences in s. \xNN yields a raw byte;
// \u and \U escapes and literal characters are UTF-8 encoded. Quote escapes
// are not recognised since s is not quoted.
func Unescape(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for len(s) > 0 {
		r, multibyte, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			return nil, err
		}
		if multibyte {
			out = utf8.AppendRune(out, r)
		} else {
			out = append(out, byte(r))
		}
		s = tail
	}
	return out, nil
}
