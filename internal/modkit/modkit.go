// Package modkit wires feature modules into the API: shared deps, a route
// mount with per module middleware and typed access to module ports
package modkit

import (
	"context"
	"net/http"
	"reflect"

	"yukbul/internal/modkit/httpkit"
	"yukbul/internal/modkit/repokit"
	"yukbul/internal/platform/config"
	"yukbul/internal/platform/logger"
	"yukbul/internal/platform/store"
	pstrings "yukbul/internal/platform/strings"
)

// Module is what the API mounts
type Module interface {
	Name() string
	MountRoutes(r httpkit.Router)
	// Ports is the module's exported surface, nil when it has none
	Ports() any
}

// Runner is implemented by modules owning a background loop
type Runner interface {
	Run(ctx context.Context) error
}

// Deps are handed to every module. PG and CH are nil when not configured.
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// Option adjusts a Mount
type Option func(*Mount)

// WithPrefix overrides the default route prefix
func WithPrefix(prefix string) Option { return func(m *Mount) { m.Prefix = prefix } }

// WithMiddlewares appends per module middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(m *Mount) { m.Mw = append(m.Mw, mw...) }
}

// WithPorts hands a module the ports it consumes from another module
func WithPorts(p any) Option { return func(m *Mount) { m.Ports = p } }

// Mount is the resolved routing config of a module
type Mount struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// NewMount applies opts over the module defaults
func NewMount(name, prefix string, opts ...Option) Mount {
	m := Mount{Name: name, Prefix: prefix}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Route mounts reg under prefix with the module middleware. An empty prefix
// means the module's own. Prefixes are cleaned to one leading slash and no
// trailing one; a prefix that cleans to the root panics.
func (m Mount) Route(r httpkit.Router, prefix string, reg func(httpkit.Router)) {
	if prefix == "" {
		prefix = m.Prefix
	}
	r.Route(pstrings.MustPrefix(prefix), func(rr httpkit.Router) {
		for _, mw := range m.Mw {
			rr.Use(mw)
		}
		reg(rr)
	})
}

// PortsOf returns the first value in m's ports implementing T: the ports
// value itself or one of its exported struct fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() || (f.Kind() == reflect.Interface && f.IsNil()) {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for bootstrap code
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("modkit: module " + m.Name() + " does not export " + reflect.TypeFor[T]().String())
	}
	return v
}
