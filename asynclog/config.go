package asynclog

import "time"

// Compile-time/startup knobs, named after spec.md §6.
const (
	// MaxLineSize is the cap a rendered log line is truncated to.
	MaxLineSize = 512
	// MaxFileSize is the size a log file is rotated at.
	MaxFileSize = 1 << 20
	// BufferSize is the fixed capacity of a single LogBuffer.
	BufferSize = 4096
	// DefaultFlushInterval bounds the flusher's condition-variable wait.
	DefaultFlushInterval = 2000 * time.Millisecond
	// MaxBacktraceDepth caps frames captured on the fatal path.
	MaxBacktraceDepth = 16
)

// DefaultLevel is the minimum level emitted absent an explicit Config.
const DefaultLevel = Info

// Config holds the immutable parameters of a Logger instance.
//
// Its zero value is not valid; use DefaultConfig and apply Options on top.
type Config struct {
	Dir           string
	MinLevel      Level
	MaxLineSize   int
	MaxFileSize   int64
	BufferSize    int
	FlushInterval time.Duration
	Formatter     LineFormatter
	Backtrace     BacktraceProvider
}

// DefaultConfig returns sane defaults matching spec.md's constants.
func DefaultConfig(dir string) *Config {
	return &Config{
		Dir:           dir,
		MinLevel:      DefaultLevel,
		MaxLineSize:   MaxLineSize,
		MaxFileSize:   MaxFileSize,
		BufferSize:    BufferSize,
		FlushInterval: DefaultFlushInterval,
		Formatter:     defaultFormatter{},
		Backtrace:     runtimeBacktrace{},
	}
}

// Option mutates a Config before a Logger is constructed.
type Option func(*Config)

// WithMinLevel overrides the minimum emitted level.
func WithMinLevel(l Level) Option {
	return func(c *Config) { c.MinLevel = l }
}

// WithMaxFileSize overrides the rotation threshold.
func WithMaxFileSize(n int64) Option {
	return func(c *Config) { c.MaxFileSize = n }
}

// WithFlushInterval overrides the flusher's wait ceiling.
func WithFlushInterval(d time.Duration) Option {
	return func(c *Config) { c.FlushInterval = d }
}

// WithFormatter overrides the line-rendering collaborator.
func WithFormatter(f LineFormatter) Option {
	return func(c *Config) { c.Formatter = f }
}

// WithBacktraceProvider overrides the fatal-path backtrace collaborator.
func WithBacktraceProvider(b BacktraceProvider) Option {
	return func(c *Config) { c.Backtrace = b }
}

func (c *Config) apply(opts []Option) {
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
}
