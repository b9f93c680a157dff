package config

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/kbukum/subsl/errors"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("subsl", pflag.ContinueOnError)
	fs.String("needle", "", "")
	fs.String("format", "raw", "")
	fs.Bool("stream", false, "")
	fs.String("log-level", "", "")
	return fs
}

var testFlagKeys = map[string]string{"log-level": "logging.level"}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subsl.yml")
	yamlContent := `
needle: "\\r\\n"
format: json
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Run("file overrides flag defaults", func(t *testing.T) {
		fs := testFlags()
		if err := fs.Parse(nil); err != nil {
			t.Fatal(err)
		}
		var cfg Config
		if err := LoadConfig("subsl", &cfg, WithConfigFile(path), WithFlagSet(fs, testFlagKeys)); err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Format != "json" || cfg.Needle != `\r\n` || cfg.Logging.Level != "debug" {
			t.Errorf("unexpected config %+v", cfg)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("SUBSL_FORMAT", "spans")
		t.Setenv("SUBSL_LOGGING_LEVEL", "error")
		fs := testFlags()
		if err := fs.Parse(nil); err != nil {
			t.Fatal(err)
		}
		var cfg Config
		if err := LoadConfig("subsl", &cfg, WithConfigFile(path), WithFlagSet(fs, testFlagKeys)); err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Format != "spans" {
			t.Errorf("format = %q, want spans", cfg.Format)
		}
		if cfg.Logging.Level != "error" {
			t.Errorf("logging.level = %q, want error", cfg.Logging.Level)
		}
	})

	t.Run("explicit flags override env", func(t *testing.T) {
		t.Setenv("SUBSL_FORMAT", "spans")
		fs := testFlags()
		if err := fs.Parse([]string{"--format=raw", "--stream"}); err != nil {
			t.Fatal(err)
		}
		var cfg Config
		if err := LoadConfig("subsl", &cfg, WithConfigFile(path), WithFlagSet(fs, testFlagKeys)); err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Format != "raw" || !cfg.Stream {
			t.Errorf("unexpected config %+v", cfg)
		}
	})
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg Config
	err := LoadConfig("subsl", &cfg, WithConfigFile("/nonexistent/path.yml"), WithFileSystem(&mockFS{}))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./.env": true}, env: map[string]string{"SUBSL_NEEDLE": "||"}}
	flags := testFlags()
	if err := flags.Parse(nil); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SUBSL_NEEDLE", "")
	var cfg Config
	if err := LoadConfig("subsl", &cfg, WithFileSystem(fs), WithFlagSet(flags, testFlagKeys)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Needle != "||" {
		t.Errorf("needle = %q, want ||", cfg.Needle)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/subsl.yml": true,
		"./.env.subsl":       true,
		"./.env":             true,
	}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("subsl", LoaderConfig{})
	if files.ConfigFile != "./config/subsl.yml" {
		t.Errorf("config file = %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env.subsl" {
		t.Errorf("env file = %q", files.EnvFile)
	}

	explicit := (&Resolver{FileSystem: fs}).ResolveFiles("subsl", LoaderConfig{ConfigFile: "/etc/subsl.yml"})
	if explicit.ConfigFile != "/etc/subsl.yml" {
		t.Errorf("explicit config file = %q", explicit.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
	env   map[string]string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(string) error {
	for k, v := range m.env {
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Input != StdStream || cfg.Output != StdStream {
		t.Errorf("expected stdin/stdout defaults, got %q %q", cfg.Input, cfg.Output)
	}
	if cfg.Format != FormatRaw {
		t.Errorf("format = %q, want raw", cfg.Format)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("logging.output = %q, want stderr", cfg.Logging.Output)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		c := Config{}
		c.ApplyDefaults()
		return c
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode errors.ErrorCode
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty needle is allowed", func(c *Config) { c.Needle = "" }, ""},
		{"hex needle", func(c *Config) { c.NeedleHex = "0x0d0a" }, ""},
		{"unknown format", func(c *Config) { c.Format = "xml" }, errors.ErrCodeInvalidInput},
		{"needle and hex", func(c *Config) { c.Needle = ","; c.NeedleHex = "2c" }, errors.ErrCodeInvalidInput},
		{"odd hex", func(c *Config) { c.NeedleHex = "abc" }, errors.ErrCodeInvalidFormat},
		{"bad escape", func(c *Config) { c.Needle = `\q` }, errors.ErrCodeInvalidFormat},
		{"bad delimiter", func(c *Config) { c.Delimiter = `\x0` }, errors.ErrCodeInvalidFormat},
		{"max segment with unit", func(c *Config) { c.MaxSegment = "1MiB" }, ""},
		{"negative max segment", func(c *Config) { c.MaxSegment = "-1" }, errors.ErrCodeInvalidFormat},
		{"zero max segment", func(c *Config) { c.MaxSegment = "0" }, errors.ErrCodeInvalidInput},
		{"huge max segment", func(c *Config) { c.MaxSegment = "2GB" }, errors.ErrCodeInvalidInput},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, errors.ErrCodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantCode == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != tc.wantCode {
				t.Errorf("code = %s, want %s (%v)", appErr.Code, tc.wantCode, err)
			}
		})
	}
}

func TestNeedleBytes(t *testing.T) {
	tests := []struct {
		cfg  Config
		want []byte
	}{
		{Config{Needle: `\r\n\r\n`}, []byte("\r\n\r\n")},
		{Config{Needle: `a\tb`}, []byte("a\tb")},
		{Config{Needle: `\xff\x00`}, []byte{0xff, 0x00}},
		{Config{Needle: `é`}, []byte("é")},
		{Config{Needle: "é"}, []byte("é")},
		{Config{Needle: ""}, []byte{}},
		{Config{NeedleHex: "0D0A"}, []byte("\r\n")},
	}
	for _, tc := range tests {
		got, err := tc.cfg.NeedleBytes()
		if err != nil {
			t.Errorf("NeedleBytes(%+v): %v", tc.cfg, err)
			continue
		}
		if !bytes.Equal(got, tc.want) {
			t.Errorf("NeedleBytes(%+v) = %q, want %q", tc.cfg, got, tc.want)
		}
	}
}

func TestDelimiterBytes(t *testing.T) {
	got, err := (&Config{}).DelimiterBytes()
	if err != nil || string(got) != "\n" {
		t.Errorf("default delimiter = %q, %v", got, err)
	}
	got, err = (&Config{Delimiter: `\x00`}).DelimiterBytes()
	if err != nil || !bytes.Equal(got, []byte{0}) {
		t.Errorf("NUL delimiter = %q, %v", got, err)
	}
}

func TestUnescapeError(t *testing.T) {
	_, err := Unescape(`trailing\`)
	if err == nil || !strings.Contains(err.Error(), "invalid syntax") {
		t.Errorf("expected syntax error, got %v", err)
	}
}

func TestMaxSegmentBytes(t *testing.T) {
	c := Config{}
	n, err := c.MaxSegmentBytes()
	if err != nil || n != bufio.MaxScanTokenSize {
		t.Errorf("default = %d (%v), want %d", n, err, bufio.MaxScanTokenSize)
	}
	c.MaxSegment = "16kb"
	if n, _ := c.MaxSegmentBytes(); n != 16*1024 {
		t.Errorf("16kb = %d", n)
	}
}
