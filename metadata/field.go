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

// Field describes one persisted field: where it lives on the Go type, which column
// it maps to and how its value is read and written.
// Fields are created by the Parser and never change afterwards.
type Field struct {
	name       string
	goType     reflect.Type
	declaring  reflect.Type
	columnType registry.ColumnType
	columnName string
	elemTypes  []registry.ColumnType
	encoding   string
	accessor   Accessor
	codec      registry.Codec
	logger     *zap.Logger

	partition  bool
	clustering bool
	static     bool
	auto       bool
	ordinal    int
	ordinalSet bool
	order      SortOrder
}

// Name returns the Go field name
func (f *Field) Name() string { return f.name }

// Type returns the Go type of the field
func (f *Field) Type() reflect.Type { return f.goType }

// DeclaringType returns the struct type that declares the field
func (f *Field) DeclaringType() reflect.Type { return f.declaring }

// ColumnType returns the column type tag
func (f *Field) ColumnType() registry.ColumnType { return f.columnType }

// ColumnName returns the column the field maps to
func (f *Field) ColumnName() string { return f.columnName }

// IsCollection reports whether the field is a list, set or map column
func (f *Field) IsCollection() bool { return f.encoding != "" }

// CollectionEncoding returns list<T>, set<T> or map<K,V>, or "" for scalar columns
func (f *Field) CollectionEncoding() string { return f.encoding }

// ElementTypes returns the element tags of a collection column
func (f *Field) ElementTypes() []registry.ColumnType {
	if len(f.elemTypes) == 0 {
		return nil
	}
	out := make([]registry.ColumnType, len(f.elemTypes))
	copy(out, f.elemTypes)
	return out
}

// Definition returns the column type as written in a schema definition.
func (f *Field) Definition() string {
	if f.encoding != "" {
		return f.encoding
	}
	return f.columnType.String()
}

func (f *Field) IsPartition() bool  { return f.partition }
func (f *Field) IsClustering() bool { return f.clustering }

// IsPrimary reports whether the field belongs to the primary key
func (f *Field) IsPrimary() bool { return f.partition || f.clustering }

func (f *Field) IsStatic() bool       { return f.static }
func (f *Field) IsAutoGenerate() bool { return f.auto }

// Ordinal is the position of the field within its key segment
func (f *Field) Ordinal() int { return f.ordinal }

// SortOrder is the clustering order. Always Ascending for non-clustering fields.
func (f *Field) SortOrder() SortOrder { return f.order }

// Role returns the key role of the field
func (f *Field) Role() KeyRole {
	switch {
	case f.partition:
		return RolePartition
	case f.clustering:
		return RoleClustering
	default:
		return RoleNone
	}
}

// Codec returns the codec used by Read and Write
func (f *Field) Codec() registry.Codec { return f.codec }

func (f *Field) String() string {
	return fmt.Sprintf("%s %s", f.columnName, f.Definition())
}

// Get returns the host value of the field on entity, which is a struct value or a
// pointer to the declaring struct. Nil pointers come back as nil.
func (f *Field) Get(entity any) (any, error) {
	holder, err := holderOf(entity, f.declaring, false)
	if err != nil {
		return nil, f.fault("get", err)
	}
	v, err := f.accessor.Get(holder)
	if err != nil {
		return nil, f.fault("get", err)
	}
	return unwrap(v), nil
}

// Set assigns value to the field on entity, which must be a non-nil pointer.
// nil sets the zero value; values of a related type are converted.
func (f *Field) Set(entity any, value any) error {
	holder, err := holderOf(entity, f.declaring, true)
	if err != nil {
		return f.fault("set", err)
	}
	v, err := coerce(value, f.goType)
	if err != nil {
		return f.fault("set", err)
	}
	if err := f.accessor.Set(holder, v); err != nil {
		return f.fault("set", err)
	}
	return nil
}

// Read returns the field value in wire form, after the codec.
func (f *Field) Read(entity any) (any, error) {
	v, err := f.Get(entity)
	if err != nil {
		return nil, err
	}
	out, err := f.codec.Encode(v)
	if err != nil {
		return nil, f.fault("encode", err)
	}
	return out, nil
}

// Write decodes a wire value through the codec and sets it.
func (f *Field) Write(entity any, value any) error {
	v, err := f.codec.Decode(value)
	if err != nil {
		return f.fault("decode", err)
	}
	return f.Set(entity, v)
}

// Value is Read with faults logged and treated as no value.
func (f *Field) Value(entity any) any {
	v, err := f.Read(entity)
	if err != nil {
		f.logger.Warn("can't get value",
			zap.String("field", f.name),
			zap.String("column", f.columnName),
			zap.Error(err))
		return nil
	}
	return v
}

// SetValue is Write with faults logged and ignored.
func (f *Field) SetValue(entity any, value any) {
	if err := f.Write(entity, value); err != nil {
		f.logger.Warn("can't set value",
			zap.String("field", f.name),
			zap.String("column", f.columnName),
			zap.Error(err))
	}
}

func (f *Field) fault(op string, err error) error {
	return errors.NewAccessorError(f.declaring.Name(), f.name, op, err)
}

// holderOf converts an entity argument into a pointer to t.
func holderOf(entity any, t reflect.Type, writable bool) (reflect.Value, error) {
	if entity == nil {
		return reflect.Value{}, errors.ErrNotPointer
	}

	v := reflect.ValueOf(entity)
	if v.Kind() == reflect.Pointer && v.Type().Elem() == t {
		if v.IsNil() {
			return reflect.Value{}, errors.ErrNotPointer
		}
		return v, nil
	}
	if v.Type() == t {
		if writable {
			return reflect.Value{}, fmt.Errorf("%w: got %s", errors.ErrNotPointer, t)
		}
		p := reflect.New(t)
		p.Elem().Set(v)
		return p, nil
	}
	return reflect.Value{}, fmt.Errorf("expected %s, got %s", t, v.Type())
}

func unwrap(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}

// coerce converts value into a reflect.Value assignable to t.
func coerce(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(value)
	vt := v.Type()
	switch {
	case vt.AssignableTo(t):
		return v, nil
	case t.Kind() == reflect.Pointer && vt.AssignableTo(t.Elem()):
		p := reflect.New(t.Elem())
		p.Elem().Set(v)
		return p, nil
	case vt.Kind() == reflect.Pointer && vt.Elem().AssignableTo(t):
		if v.IsNil() {
			return reflect.Zero(t), nil
		}
		return v.Elem(), nil
	}

	target := t
	if t.Kind() == reflect.Pointer {
		target = t.Elem()
	}
	if converted, ok := convert(v, target); ok {
		if target == t {
			return converted, nil
		}
		p := reflect.New(target)
		p.Elem().Set(converted)
		return p, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot assign %s to %s", errors.ErrCodec, vt, t)
}

func convert(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	switch {
	case isNumber(v.Kind()) && isNumber(t.Kind()):
		return v.Convert(t), true
	case v.Kind() == reflect.String && t.Kind() == reflect.String:
		return v.Convert(t), true
	case t.Kind() == reflect.String:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return reflect.ValueOf(s.String()).Convert(t), true
		}
	case v.Type().ConvertibleTo(t) && v.Kind() == t.Kind():
		return v.Convert(t), true
	}
	return reflect.Value{}, false
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
