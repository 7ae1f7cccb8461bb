/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymeta

import (
	"reflect"

	"github.com/suparena/entitymeta/config"
	"github.com/suparena/entitymeta/metadata"
	"github.com/suparena/entitymeta/registry"
	"go.uber.org/zap"
)

// Context owns a type registry and the metadata derived through it.
// It is safe for concurrent use.
//
// Registry changes apply to metadata derived afterwards. Invalidate the affected
// types (or call InvalidateAll) after changing the registry.
type Context struct {
	registry *registry.TypeRegistry
	parser   *metadata.Parser
	cache    *Cache
	logger   *zap.Logger
}

type options struct {
	registry    *registry.TypeRegistry
	logger      *zap.Logger
	fieldAccess bool
}

// Option configures a Context
type Option func(*options)

// WithRegistry uses reg instead of a fresh registry.New()
func WithRegistry(reg *registry.TypeRegistry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithLogger sets the logger handed to the parser and every derived field
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFieldAccess lets exported fields without accessor methods become columns
func WithFieldAccess() Option {
	return func(o *options) {
		o.fieldAccess = true
	}
}

// New creates a mapping context.
func New(opts ...Option) *Context {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = registry.New()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	parserOpts := []metadata.Option{metadata.WithLogger(o.logger)}
	if o.fieldAccess {
		parserOpts = append(parserOpts, metadata.WithFieldAccess())
	}

	c := &Context{
		registry: o.registry,
		parser:   metadata.NewParser(o.registry, parserOpts...),
		logger:   o.logger,
	}
	c.cache = NewCache(c.parse)
	return c
}

// NewFromConfig creates a context with the logger, registry overrides and field
// access mode described by cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Context, error) {
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	if err := cfg.ApplyTo(reg); err != nil {
		return nil, err
	}

	all := []Option{WithRegistry(reg), WithLogger(logger)}
	if cfg.FieldAccess {
		all = append(all, WithFieldAccess())
	}
	return New(append(all, opts...)...), nil
}

func (c *Context) parse(t reflect.Type) (*metadata.Entity, error) {
	e, err := c.parser.Parse(t)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("derived entity metadata",
		zap.String("entity", t.String()),
		zap.String("table", e.TableName()),
		zap.Int("columns", len(e.Columns())))
	return e, nil
}

// Get returns the metadata for t, deriving it on first use.
// Repeated calls return the same instance until t is invalidated.
func (c *Context) Get(t reflect.Type) (*metadata.Entity, error) {
	return c.cache.Get(t)
}

// Invalidate drops the cached metadata for t
func (c *Context) Invalidate(t reflect.Type) {
	c.cache.Invalidate(t)
}

// InvalidateAll drops every cached entry
func (c *Context) InvalidateAll() {
	c.cache.InvalidateAll()
}

// Registry returns the type registry used for derivation
func (c *Context) Registry() *registry.TypeRegistry { return c.registry }

// Parser returns the parser used to fill the cache
func (c *Context) Parser() *metadata.Parser { return c.parser }

// Logger returns the context logger
func (c *Context) Logger() *zap.Logger { return c.logger }

// Len returns the number of cached entities
func (c *Context) Len() int { return c.cache.Len() }

// Types returns the cached entity types sorted by name
func (c *Context) Types() []reflect.Type { return c.cache.Types() }

// Default is the process-wide context used by For.
var Default = New()

// GetEntityMetadata returns the metadata of T from c
func GetEntityMetadata[T any](c *Context) (*metadata.Entity, error) {
	return c.Get(reflect.TypeFor[T]())
}

// InvalidateEntity drops the cached metadata of T from c
func InvalidateEntity[T any](c *Context) {
	c.Invalidate(reflect.TypeFor[T]())
}

// For returns the metadata of T from the Default context
func For[T any]() (*metadata.Entity, error) {
	return GetEntityMetadata[T](Default)
}
