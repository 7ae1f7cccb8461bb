/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
)

// RegisterCodec associates a codec with a host type. It takes precedence over any
// codec registered for the column type the host type maps to.
func (r *TypeRegistry) RegisterCodec(t reflect.Type, c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[t] = c
}

// RegisterTagCodec associates a codec with every host type that maps to ct.
func (r *TypeRegistry) RegisterTagCodec(ct ColumnType, c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tagCodecs[ct] = c
}

// CodecFor returns the codec for host type t mapped to ct: a codec registered for t,
// then for the element of a pointer t, then for ct, falling back to Identity.
func (r *TypeRegistry) CodecFor(t reflect.Type, ct ColumnType) Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t != nil {
		if c, ok := r.codecs[t]; ok {
			return c
		}
		if t.Kind() == reflect.Pointer {
			if c, ok := r.codecs[t.Elem()]; ok {
				return c
			}
		}
	}
	if c, ok := r.tagCodecs[ct]; ok {
		return c
	}
	return Identity
}

// RegisterCodecFor associates a codec with the host type T.
func RegisterCodecFor[T any](r *TypeRegistry, c Codec) {
	r.RegisterCodec(reflect.TypeFor[T](), c)
}

// RegisterEnum maps the enum type E to text and installs a codec that stores each
// value by its name.
func RegisterEnum[E comparable](r *TypeRegistry, names map[E]string) {
	t := reflect.TypeFor[E]()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t] = Text
	r.codecs[t] = NewEnumCodec(names)
}
