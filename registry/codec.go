/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/suparena/entitymeta/errors"
)

// Codec converts a field value between its host representation and the
// representation handed to a value marshaller.
// Both directions must pass nil through unchanged.
type Codec interface {
	Encode(v any) (any, error)
	Decode(v any) (any, error)
}

type identityCodec struct{}

func (identityCodec) Encode(v any) (any, error) { return v, nil }
func (identityCodec) Decode(v any) (any, error) { return v, nil }

// Identity passes values through untouched.
var Identity Codec = identityCodec{}

// EnumCodec stores an enum value as its name.
type EnumCodec[E comparable] struct {
	names  map[E]string
	values map[string]E
}

// NewEnumCodec builds an EnumCodec from the value to name table. The table is copied.
func NewEnumCodec[E comparable](names map[E]string) *EnumCodec[E] {
	c := &EnumCodec[E]{
		names:  make(map[E]string, len(names)),
		values: make(map[string]E, len(names)),
	}
	for v, name := range names {
		c.names[v] = name
		c.values[name] = v
	}
	return c
}

func (c *EnumCodec[E]) Encode(v any) (any, error) {
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case E:
		name, ok := c.names[tv]
		if !ok {
			return nil, fmt.Errorf("%w: no name for enum value %v", errors.ErrCodec, tv)
		}
		return name, nil
	case *E:
		if tv == nil {
			return nil, nil
		}
		return c.Encode(*tv)
	default:
		return nil, fmt.Errorf("%w: %T is not an enum value", errors.ErrCodec, v)
	}
}

func (c *EnumCodec[E]) Decode(v any) (any, error) {
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case E:
		return tv, nil
	case string:
		value, ok := c.values[tv]
		if !ok {
			return nil, fmt.Errorf("%w: unknown enum name %q", errors.ErrCodec, tv)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("%w: cannot decode %T as enum", errors.ErrCodec, v)
	}
}

type dateTimeCodec struct{}

func (dateTimeCodec) Encode(v any) (any, error) {
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case strfmt.DateTime:
		return time.Time(tv), nil
	case *strfmt.DateTime:
		if tv == nil {
			return nil, nil
		}
		return time.Time(*tv), nil
	default:
		return v, nil
	}
}

func (dateTimeCodec) Decode(v any) (any, error) {
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return strfmt.DateTime(tv), nil
	case string:
		dt, err := strfmt.ParseDateTime(tv)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrCodec, err)
		}
		return dt, nil
	default:
		return v, nil
	}
}

// DateTimeCodec stores strfmt.DateTime values as time.Time.
var DateTimeCodec Codec = dateTimeCodec{}

type stringUUIDCodec struct{}

func (stringUUIDCodec) Encode(v any) (any, error) {
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case strfmt.UUID:
		return string(tv), nil
	case *strfmt.UUID:
		if tv == nil {
			return nil, nil
		}
		return string(*tv), nil
	default:
		return v, nil
	}
}

func (stringUUIDCodec) Decode(v any) (any, error) {
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case string:
		return strfmt.UUID(tv), nil
	case uuid.UUID:
		return strfmt.UUID(tv.String()), nil
	case [16]byte:
		return strfmt.UUID(uuid.UUID(tv).String()), nil
	default:
		return v, nil
	}
}

// StringUUIDCodec stores strfmt.UUID values as plain strings.
var StringUUIDCodec Codec = stringUUIDCodec{}
