/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/metadata"
	"github.com/suparena/entitymeta/registry"
)

var (
	uuidType    = reflect.TypeFor[uuid.UUID]()
	emptyStruct = reflect.TypeFor[struct{}]()
)

// MarshalItem converts entity into a DynamoDB item: one attribute per column,
// plus the PK, SK and PK<n> attributes expanded from IndexMap.
func MarshalItem(e *metadata.Entity, entity any) (map[string]types.AttributeValue, error) {
	indexMap, err := IndexMap(e)
	if err != nil {
		return nil, err
	}

	values, err := e.Values(entity)
	if err != nil {
		return nil, err
	}

	av, err := attributevalue.MarshalMap(normalizeMap(values))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	// Expand macros using the column values
	expanded, err := ExpandMacros(indexMap, values)
	if err != nil {
		return nil, err
	}

	// Insert the expanded fields as PK, SK, etc.
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	return av, nil
}

// UnmarshalItem sets the columns of entity, a non-nil pointer, from item.
// Key attributes and attributes that match no column are ignored.
func UnmarshalItem(e *metadata.Entity, item map[string]types.AttributeValue, entity any) error {
	values := make(map[string]any, len(item))
	var errs []error
	for _, f := range e.Columns() {
		av, ok := item[f.ColumnName()]
		if !ok {
			continue
		}

		t := f.Type()
		if f.Codec() != registry.Identity {
			// the codec decides the host value
			t = reflect.TypeFor[any]()
		}
		v, err := decodeValue(av, t)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: column %s: %v", errors.ErrCodec, f.ColumnName(), err))
			continue
		}
		values[f.ColumnName()] = v
	}

	if err := e.SetValues(entity, values); err != nil {
		errs = append(errs, err)
	}
	return stderrors.Join(errs...)
}

// normalizeMap rewrites values the attributevalue encoder cannot store: UUIDs
// become strings, sets become lists and map keys become strings.
func normalizeMap(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case uuid.UUID:
		return val.String()
	case *uuid.UUID:
		if val == nil {
			return nil
		}
		return val.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 || !needsNormalize(rv.Type().Elem()) {
			return v
		}
		if rv.IsNil() {
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
		if rv.Type().Elem() == emptyStruct {
			keys := make([]any, 0, rv.Len())
			for _, k := range rv.MapKeys() {
				keys = append(keys, normalize(k.Interface()))
			}
			return keys
		}
		if rv.Type().Key().Kind() == reflect.String && !needsNormalize(rv.Type().Elem()) {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(normalize(iter.Key().Interface()))] = normalize(iter.Value().Interface())
		}
		return out
	}
	return v
}

func needsNormalize(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return t == uuidType
	case reflect.Pointer:
		return needsNormalize(t.Elem())
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Uint8 && needsNormalize(t.Elem())
	case reflect.Map:
		return t.Elem() == emptyStruct || t.Key().Kind() != reflect.String || needsNormalize(t.Elem())
	}
	return false
}

// decodeValue reverses normalize for a value of host type t.
func decodeValue(av types.AttributeValue, t reflect.Type) (any, error) {
	if _, ok := av.(*types.AttributeValueMemberNULL); ok {
		return nil, nil
	}

	switch {
	case t == uuidType:
		var s string
		if err := attributevalue.Unmarshal(av, &s); err != nil {
			return nil, err
		}
		return uuid.Parse(s)
	case t.Kind() == reflect.Pointer && needsNormalize(t):
		v, err := decodeValue(av, t.Elem())
		if err != nil || v == nil {
			return nil, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(reflect.ValueOf(v))
		return p.Interface(), nil
	case t.Kind() == reflect.Slice && needsNormalize(t):
		return decodeList(av, t)
	case t.Kind() == reflect.Map && t.Elem() == emptyStruct:
		return decodeList(av, t)
	case t.Kind() == reflect.Map && needsNormalize(t):
		return decodeMap(av, t)
	}

	p := reflect.New(t)
	if err := attributevalue.Unmarshal(av, p.Interface()); err != nil {
		return nil, err
	}
	return p.Elem().Interface(), nil
}

// decodeList decodes a list attribute into a slice or a set
func decodeList(av types.AttributeValue, t reflect.Type) (any, error) {
	var items []types.AttributeValue
	switch tv := av.(type) {
	case *types.AttributeValueMemberL:
		items = tv.Value
	case *types.AttributeValueMemberSS:
		for _, s := range tv.Value {
			items = append(items, &types.AttributeValueMemberS{Value: s})
		}
	default:
		return nil, fmt.Errorf("cannot decode %T into %s", av, t)
	}

	set := t.Kind() == reflect.Map
	var out reflect.Value
	var elem reflect.Type
	if set {
		elem = t.Key()
		out = reflect.MakeMapWithSize(t, len(items))
	} else {
		elem = t.Elem()
		out = reflect.MakeSlice(t, 0, len(items))
	}

	for _, item := range items {
		v, err := decodeValue(item, elem)
		if err != nil {
			return nil, err
		}
		if set {
			out.SetMapIndex(valueOf(v, elem), reflect.Zero(emptyStruct))
		} else {
			out = reflect.Append(out, valueOf(v, elem))
		}
	}
	return out.Interface(), nil
}

func decodeMap(av types.AttributeValue, t reflect.Type) (any, error) {
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("cannot decode %T into %s", av, t)
	}

	out := reflect.MakeMapWithSize(t, len(m.Value))
	for k, item := range m.Value {
		key, err := decodeValue(&types.AttributeValueMemberS{Value: k}, t.Key())
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(item, t.Elem())
		if err != nil {
			return nil, err
		}
		out.SetMapIndex(valueOf(key, t.Key()), valueOf(v, t.Elem()))
	}
	return out.Interface(), nil
}

func valueOf(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}
