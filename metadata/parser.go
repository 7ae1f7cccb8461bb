/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"fmt"
	"reflect"

	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/registry"
	"go.uber.org/zap"
)

// Parser derives Entity metadata from struct types.
// It holds no state between calls and is safe for concurrent use.
type Parser struct {
	registry    *registry.TypeRegistry
	logger      *zap.Logger
	fieldAccess bool
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger used for exclusions, key conflicts and accessor faults
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithFieldAccess lets exported fields without a getter/setter pair be read and
// written directly.
func WithFieldAccess() Option {
	return func(p *Parser) {
		p.fieldAccess = true
	}
}

// NewParser creates a parser resolving field types through reg. A nil reg uses
// a fresh registry.New().
func NewParser(reg *registry.TypeRegistry, opts ...Option) *Parser {
	if reg == nil {
		reg = registry.New()
	}
	p := &Parser{registry: reg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the type registry the parser consults
func (p *Parser) Registry() *registry.TypeRegistry { return p.registry }

// Parse derives the metadata of t, a struct type or a pointer to one.
// Fields that cannot be mapped are left out; the only error is a non-struct t.
func (p *Parser) Parse(t reflect.Type) (*Entity, error) {
	if t == nil {
		return nil, errors.ErrNotStruct
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", errors.ErrNotStruct, t)
	}

	e := p.shell(t)
	w := &walker{
		parser:   p,
		entity:   e,
		logger:   p.logger.With(zap.String("entity", t.String())),
		visiting: map[reflect.Type]bool{t: true},
	}
	w.walkEntity(t)
	w.finish()
	return e, nil
}

// ParseOf derives the metadata of T.
func ParseOf[T any](p *Parser) (*Entity, error) {
	return p.Parse(reflect.TypeFor[T]())
}

// shell reads the type-level facts: table name and indexes.
func (p *Parser) shell(t reflect.Type) *Entity {
	e := &Entity{typ: t, table: t.Name()}

	instance := reflect.New(t).Interface()
	if tabler, ok := instance.(Tabler); ok {
		if name := p.call(t, "TableName", func() any { return tabler.TableName() }); name != nil && name.(string) != "" {
			e.table = name.(string)
		}
	}
	if indexer, ok := instance.(Indexer); ok {
		if idx := p.call(t, "Indexes", func() any { return indexer.Indexes() }); idx != nil {
			for _, index := range idx.([]Index) {
				e.indexes = append(e.indexes, Index{
					Name:    index.Name,
					Columns: append([]string(nil), index.Columns...),
				})
			}
		}
	}
	return e
}

func (p *Parser) call(t reflect.Type, method string, fn func() any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("type-level method panicked",
				zap.String("entity", t.String()),
				zap.String("method", method),
				zap.Any("panic", r))
			out = nil
		}
	}()
	return fn()
}

// walker carries the state of one Parse call.
type walker struct {
	parser   *Parser
	entity   *Entity
	logger   *zap.Logger
	visiting map[reflect.Type]bool

	// entity level fields in declaration order, key tagged or not
	topLevel []*Field
	embedded *PrimaryKey
}

func (w *walker) walkEntity(t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := w.tagOf(sf)
		if !ok {
			continue
		}

		if w.isEmbeddedKey(sf, tag) {
			if w.embedded != nil {
				w.logger.Warn("second embedded key ignored", zap.String("field", sf.Name))
				continue
			}
			w.embedded = w.embeddedKey(t, sf)
			continue
		}

		f := w.field(t, sf, tag)
		if f == nil {
			continue
		}
		switch {
		case tag.id || tag.partition:
			f.partition = true
		case tag.clustering:
			f.clustering = true
			f.order = tag.order
		}
		w.topLevel = append(w.topLevel, f)
	}
}

// walkKey harvests the fields of an embedded key type into pk. Fields without an
// explicit role take def.
func (w *walker) walkKey(t reflect.Type, pk *PrimaryKey, def KeyRole) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := w.tagOf(sf)
		if !ok {
			continue
		}

		if w.isEmbeddedKey(sf, tag) {
			if pk.partitionKey != nil {
				w.logger.Warn("second nested partition key ignored", zap.String("field", sf.Name))
				continue
			}
			pk.partitionKey = w.embeddedKey(t, sf)
			continue
		}

		f := w.field(t, sf, tag)
		if f == nil {
			continue
		}

		role := tag.role()
		if tag.id {
			role = RolePartition
		}
		if role == RoleNone {
			role = def
		}
		switch role {
		case RolePartition:
			f.partition = true
		case RoleClustering:
			f.clustering = true
			f.order = tag.order
		}
		pk.add(f)
	}
}

// embeddedKey builds the key segment held by field sf of owner and recurses into it.
func (w *walker) embeddedKey(owner reflect.Type, sf reflect.StructField) *PrimaryKey {
	kt := sf.Type
	for kt.Kind() == reflect.Pointer {
		kt = kt.Elem()
	}

	pk := &PrimaryKey{typ: kt, embedded: true}
	if acc, ok := findAccessor(owner, sf, w.parser.fieldAccess); ok {
		pk.owner = &Field{
			name:       sf.Name,
			goType:     sf.Type,
			declaring:  owner,
			columnName: sf.Name,
			accessor:   acc,
			codec:      registry.Identity,
			logger:     w.parser.logger,
		}
	} else {
		w.logger.Debug("embedded key has no accessor pair, key values unavailable",
			zap.String("field", sf.Name))
	}

	if kt.Kind() != reflect.Struct {
		w.logger.Debug("embedded key is not a struct", zap.String("field", sf.Name), zap.Stringer("type", kt))
		return pk
	}
	if w.visiting[kt] {
		w.logger.Warn("recursive embedded key ignored", zap.String("field", sf.Name), zap.Stringer("type", kt))
		return pk
	}

	w.visiting[kt] = true
	defer delete(w.visiting, kt)

	def := RolePartition
	if w.hasEmbeddedKey(kt) {
		def = RoleClustering
	}
	w.walkKey(kt, pk, def)
	return pk
}

func (w *walker) hasEmbeddedKey(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			continue
		}
		tag, _ := parseTag(sf)
		if !tag.transient && w.isEmbeddedKey(sf, tag) {
			return true
		}
	}
	return false
}

// isEmbeddedKey reports whether sf declares a key segment rather than a column:
// an embedded tag, or an id tag on a type the registry does not map.
func (w *walker) isEmbeddedKey(sf reflect.StructField, tag fieldTag) bool {
	if tag.embedded {
		return true
	}
	if !tag.id {
		return false
	}
	if _, ok := w.parser.registry.Resolve(sf.Type); ok {
		return false
	}
	kt := sf.Type
	for kt.Kind() == reflect.Pointer {
		kt = kt.Elem()
	}
	return kt.Kind() == reflect.Struct
}

// tagOf parses the tag of sf and filters out fields that never become columns.
func (w *walker) tagOf(sf reflect.StructField) (fieldTag, bool) {
	if sf.Anonymous {
		w.logger.Debug("field excluded", zap.String("field", sf.Name), zap.String("reason", "anonymous"))
		return fieldTag{}, false
	}
	tag, err := parseTag(sf)
	if err != nil {
		w.logger.Debug("invalid tag options", zap.String("field", sf.Name), zap.Error(err))
	}
	if tag.transient {
		w.logger.Debug("field excluded", zap.String("field", sf.Name), zap.String("reason", "transient"))
		return tag, false
	}
	return tag, true
}

// field builds the descriptor for a column field, or returns nil when the type is
// unmapped or no accessor pair exists.
func (w *walker) field(owner reflect.Type, sf reflect.StructField, tag fieldTag) *Field {
	reg := w.parser.registry

	ct, ok := reg.Resolve(sf.Type)
	if !ok {
		w.logger.Debug("field excluded", zap.String("field", sf.Name), zap.String("reason", "unmapped type"),
			zap.Stringer("type", sf.Type))
		return nil
	}
	acc, ok := findAccessor(owner, sf, w.parser.fieldAccess)
	if !ok {
		w.logger.Debug("field excluded", zap.String("field", sf.Name), zap.String("reason", "no accessor pair"))
		return nil
	}

	column := tag.column
	if column == "" {
		column = sf.Name
	}

	f := &Field{
		name:       sf.Name,
		goType:     sf.Type,
		declaring:  owner,
		columnType: ct,
		columnName: column,
		accessor:   acc,
		codec:      reg.CodecFor(sf.Type, ct),
		logger:     w.parser.logger,
		static:     tag.static,
		auto:       tag.auto,
		ordinal:    tag.ordinal,
		ordinalSet: tag.hasOrdinal,
	}
	if ct.IsCollection() {
		f.elemTypes = reg.ResolveElements(sf.Type)
		f.encoding = registry.CollectionEncoding(ct, f.elemTypes)
	}
	return f
}

// finish routes the entity level fields and sorts the key segments.
func (w *walker) finish() {
	e := w.entity

	var flat *PrimaryKey
	for _, f := range w.topLevel {
		if !f.IsPrimary() {
			e.fields = append(e.fields, f)
			continue
		}
		if w.embedded != nil {
			w.logger.Warn("entity declares an embedded key, key tag ignored",
				zap.String("field", f.name))
			f.partition, f.clustering = false, false
			f.ordinal, f.ordinalSet, f.order = 0, false, Ascending
			e.fields = append(e.fields, f)
			continue
		}
		if flat == nil {
			flat = &PrimaryKey{typ: e.typ}
		}
		flat.add(f)
	}

	switch {
	case w.embedded != nil:
		e.key = w.embedded
	case flat != nil:
		e.key = flat
	}
	if e.key != nil {
		e.key.sort()
	}
}
