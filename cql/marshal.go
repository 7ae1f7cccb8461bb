/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/datastax/go-cassandra-native-protocol/primitive"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/metadata"
)

var uuidType = reflect.TypeFor[uuid.UUID]()

// MarshalValues encodes every column of entity into its CQL wire form, keyed by
// column name. Values pass through the field codecs first. Nil values encode as
// nil. Columns that cannot be read or marshalled are left out and reported in the
// joined error.
func MarshalValues(e *metadata.Entity, entity any, proto primitive.ProtocolVersion) (map[string][]byte, error) {
	values, err := e.Values(entity)
	if values == nil {
		return nil, err
	}

	errs := []error{err}
	out := make(map[string][]byte, len(values))
	for _, f := range e.Columns() {
		v, ok := values[f.ColumnName()]
		if !ok {
			continue
		}
		b, err := gocql.Marshal(TypeInfo(f, proto), normalize(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: column %s: %v", errors.ErrCodec, f.ColumnName(), err))
			continue
		}
		out[f.ColumnName()] = b
	}
	return out, stderrors.Join(errs...)
}

// normalize rewrites google/uuid values, which gocql does not marshal, into gocql UUIDs
func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case uuid.UUID:
		return gocql.UUID(val)
	case *uuid.UUID:
		if val == nil {
			return nil
		}
		return gocql.UUID(*val)
	}

	rv := reflect.ValueOf(v)
	if !hasUUID(rv.Type()) {
		return v
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Elem() == reflect.TypeFor[struct{}]() {
			keys := make([]any, 0, rv.Len())
			for _, k := range rv.MapKeys() {
				keys = append(keys, normalize(k.Interface()))
			}
			return keys
		}
		out := make(map[any]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[normalize(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	}
	return v
}

func hasUUID(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Pointer:
		return t.Elem() == uuidType || hasUUID(t.Elem())
	case reflect.Map:
		return t.Key() == uuidType || t.Elem() == uuidType || hasUUID(t.Key()) || hasUUID(t.Elem())
	}
	return false
}
