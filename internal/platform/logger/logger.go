// Package logger is the zerolog root for every binary. Settings come from
// LOG_*; request scoped children carry request_id and chat_id.
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"yukbul/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project wide logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level        string // trace..panic, debug when unknown
	Format       string // console or json
	Service      string
	Component    string
	Writer       io.Writer // stdout when nil
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT,
// LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       rc.Get("LEVEL", "debug"),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", "yukbul"),
		Component:   rc.Get("COMPONENT", ""),
		WithCaller:  rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	initOnce sync.Once
	root     Logger
)

// Init builds the root logger. Only the first call counts, including the
// implicit one Get makes.
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		root = build(opt)
	})
}

// Get returns the root logger, booting it from the environment if needed
func Get() *Logger {
	Init(FromEnv())
	return &root
}

func build(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	c := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		c = c.Str("go_version", bi.GoVersion)
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			c = c.Str(k, v)
		}
	}
	for k, v := range opt.StaticFields {
		c = c.Str(k, v)
	}
	if opt.WithCaller {
		c = c.Caller()
	}

	l := c.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || lvl == zerolog.NoLevel || lvl == zerolog.Disabled {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyChatID
)

// WithRequest stores the request id and, for intake calls, the chat id on ctx
func WithRequest(ctx context.Context, reqID, chatID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if chatID != "" {
		ctx = context.WithValue(ctx, keyChatID, chatID)
	}
	return ctx
}

// C returns a child of the root with the ids stored on ctx
func C(ctx context.Context) *Logger {
	c := Get().With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		c = c.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyChatID).(string); s != "" {
		c = c.Str("chat_id", s)
	}
	l := c.Logger()
	return &l
}

// Named returns a child of the root tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
