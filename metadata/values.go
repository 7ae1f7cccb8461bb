/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/registry"
)

// Values reads every column of entity in wire form, keyed by column name.
// Key columns of an embedded key are read through the key's owner field; when
// the owner has no accessor pair or holds nil they are left out.
// Faults are joined into the returned error; the map holds what could be read.
func (e *Entity) Values(entity any) (map[string]any, error) {
	if err := e.check(entity, false); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(e.fields))
	var errs []error
	if e.key != nil {
		errs = append(errs, readKey(e.key, entity, out))
	}
	for _, f := range e.fields {
		v, err := f.Read(entity)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[f.columnName] = v
	}
	return out, stderrors.Join(errs...)
}

// SetValues writes wire values keyed by column name onto entity, which must be a
// non-nil pointer. Columns missing from values are left untouched.
func (e *Entity) SetValues(entity any, values map[string]any) error {
	if err := e.check(entity, true); err != nil {
		return err
	}

	var errs []error
	if e.key != nil {
		errs = append(errs, writeKey(e.key, entity, values))
	}
	for _, f := range e.fields {
		if v, ok := values[f.columnName]; ok {
			errs = append(errs, f.Write(entity, v))
		}
	}
	return stderrors.Join(errs...)
}

// ApplyGenerated fills zero-valued auto-generate columns: uuid columns get a
// random UUID, timeuuid columns a version 1 UUID and timestamp columns the
// current time. It returns the generated values by column name.
func (e *Entity) ApplyGenerated(entity any) (map[string]any, error) {
	if err := e.check(entity, true); err != nil {
		return nil, err
	}

	current, err := e.Values(entity)
	if err != nil {
		return nil, err
	}

	generated := make(map[string]any)
	for _, f := range e.Columns() {
		if !f.auto || !isZero(current[f.columnName]) {
			continue
		}
		v, err := generate(f.columnType)
		if err != nil {
			return nil, f.fault("generate", err)
		}
		generated[f.columnName] = v
	}
	if len(generated) == 0 {
		return generated, nil
	}
	return generated, e.SetValues(entity, generated)
}

func (e *Entity) check(entity any, writable bool) error {
	if entity == nil {
		return errors.ErrNotPointer
	}
	t := reflect.TypeOf(entity)
	if t.Kind() == reflect.Pointer {
		if t.Elem() != e.typ {
			return fmt.Errorf("expected %s, got %s", e.typ, t)
		}
		if reflect.ValueOf(entity).IsNil() {
			return errors.ErrNotPointer
		}
		return nil
	}
	if t != e.typ {
		return fmt.Errorf("expected %s, got %s", e.typ, t)
	}
	if writable {
		return fmt.Errorf("%w: got %s", errors.ErrNotPointer, t)
	}
	return nil
}

// keyHolder returns the value the key's own fields live on.
func keyHolder(pk *PrimaryKey, parent any) (any, bool, error) {
	if !pk.embedded {
		return parent, true, nil
	}
	if pk.owner == nil {
		return nil, false, nil
	}
	holder, err := pk.owner.Get(parent)
	if err != nil {
		return nil, false, err
	}
	return holder, holder != nil, nil
}

func readKey(pk *PrimaryKey, parent any, out map[string]any) error {
	holder, ok, err := keyHolder(pk, parent)
	if err != nil || !ok {
		return err
	}

	var errs []error
	if pk.partitionKey != nil {
		errs = append(errs, readKey(pk.partitionKey, holder, out))
	}
	for _, f := range append(cloneFields(pk.partition), pk.clustering...) {
		v, err := f.Read(holder)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[f.columnName] = v
	}
	return stderrors.Join(errs...)
}

func writeKey(pk *PrimaryKey, parent any, values map[string]any) error {
	if !touches(pk, values) {
		return nil
	}

	target := parent
	var keyPtr reflect.Value
	if pk.embedded {
		if pk.owner == nil {
			return nil
		}
		keyPtr = reflect.New(pk.typ)
		current, err := pk.owner.Get(parent)
		if err != nil {
			return err
		}
		if current != nil {
			cv := reflect.ValueOf(current)
			if cv.Kind() == reflect.Pointer {
				cv = cv.Elem()
			}
			keyPtr.Elem().Set(cv)
		}
		target = keyPtr.Interface()
	}

	var errs []error
	if pk.partitionKey != nil {
		errs = append(errs, writeKey(pk.partitionKey, target, values))
	}
	for _, f := range append(cloneFields(pk.partition), pk.clustering...) {
		if v, ok := values[f.columnName]; ok {
			errs = append(errs, f.Write(target, v))
		}
	}
	if pk.embedded {
		errs = append(errs, pk.owner.Set(parent, target))
	}
	return stderrors.Join(errs...)
}

func touches(pk *PrimaryKey, values map[string]any) bool {
	for _, f := range pk.Columns() {
		if _, ok := values[f.columnName]; ok {
			return true
		}
	}
	return false
}

func generate(ct registry.ColumnType) (any, error) {
	switch ct {
	case registry.UUID:
		return uuid.New(), nil
	case registry.TimeUUID:
		return uuid.NewUUID()
	case registry.Timestamp:
		return time.Now().UTC(), nil
	default:
		return nil, fmt.Errorf("cannot generate values for %s columns", ct)
	}
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
