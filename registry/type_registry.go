/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"math/big"
	"net"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"gopkg.in/inf.v0"
)

var emptyStruct = reflect.TypeFor[struct{}]()

// TypeRegistry maps Go host types to column type tags and holds the codecs used to
// move values between host and wire form.
// It is safe for concurrent use. Mutations are visible to every later lookup but
// never rewrite metadata that was already derived from the registry.
type TypeRegistry struct {
	mu        sync.RWMutex
	types     map[reflect.Type]ColumnType
	codecs    map[reflect.Type]Codec
	tagCodecs map[ColumnType]Codec

	// structural collection rules disabled
	noCollections bool
}

// DefaultMapping returns a fresh copy of the built-in host type mapping.
func DefaultMapping() map[reflect.Type]ColumnType {
	return map[reflect.Type]ColumnType{
		reflect.TypeFor[bool]():            Boolean,
		reflect.TypeFor[string]():          Text,
		reflect.TypeFor[int32]():           Int,
		reflect.TypeFor[int64]():           BigInt,
		reflect.TypeFor[int]():             BigInt,
		reflect.TypeFor[int16]():           SmallInt,
		reflect.TypeFor[int8]():            TinyInt,
		reflect.TypeFor[float64]():         Double,
		reflect.TypeFor[float32]():         Float,
		reflect.TypeFor[[]byte]():          Blob,
		reflect.TypeFor[time.Time]():       Timestamp,
		reflect.TypeFor[time.Duration]():   Duration,
		reflect.TypeFor[net.IP]():          Inet,
		reflect.TypeFor[uuid.UUID]():       UUID,
		reflect.TypeFor[strfmt.DateTime](): Timestamp,
		reflect.TypeFor[strfmt.UUID]():     UUID,
		reflect.TypeFor[*inf.Dec]():        Decimal,
		reflect.TypeFor[*big.Int]():        Varint,
	}
}

// New creates a registry populated with DefaultMapping and the built-in codecs.
func New() *TypeRegistry {
	r := NewEmpty()
	r.types = DefaultMapping()
	r.codecs[reflect.TypeFor[strfmt.DateTime]()] = DateTimeCodec
	r.codecs[reflect.TypeFor[strfmt.UUID]()] = StringUUIDCodec
	return r
}

// NewEmpty creates a registry with no mappings. Only the structural collection
// rules apply until entries are added.
func NewEmpty() *TypeRegistry {
	return &TypeRegistry{
		types:     make(map[reflect.Type]ColumnType),
		codecs:    make(map[reflect.Type]Codec),
		tagCodecs: make(map[ColumnType]Codec),
	}
}

// Resolve returns the column type for t. The lookup tries the exact type, then the
// element of a pointer type, then the structural rules: slices map to list,
// map[K]struct{} to set and any other map to map. The structural rules apply only
// while CollectionRules is true.
// A false result means the type is not persistable.
func (r *TypeRegistry) Resolve(t reflect.Type) (ColumnType, bool) {
	if t == nil {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLocked(t)
}

func (r *TypeRegistry) resolveLocked(t reflect.Type) (ColumnType, bool) {
	if ct, ok := r.types[t]; ok {
		return ct, true
	}

	if t.Kind() == reflect.Pointer {
		ct, ok := r.types[t.Elem()]
		return ct, ok
	}
	if r.noCollections {
		return "", false
	}

	switch t.Kind() {
	case reflect.Slice:
		return List, true
	case reflect.Map:
		if t.Elem() == emptyStruct {
			return Set, true
		}
		return Map, true
	}
	return "", false
}

// ResolveElements returns the element tags of a collection type: one tag for list
// and set, key and value tags for map. Element types that are interfaces, nested
// collections or unmapped resolve to text. Non-collection types return nil.
func (r *TypeRegistry) ResolveElements(t reflect.Type) []ColumnType {
	ct, ok := r.Resolve(t)
	if !ok || !ct.IsCollection() {
		return nil
	}

	switch ct {
	case List:
		if t.Kind() == reflect.Slice {
			return []ColumnType{r.scalar(t.Elem())}
		}
	case Set:
		if t.Kind() == reflect.Map {
			return []ColumnType{r.scalar(t.Key())}
		}
		if t.Kind() == reflect.Slice {
			return []ColumnType{r.scalar(t.Elem())}
		}
	case Map:
		if t.Kind() == reflect.Map {
			return []ColumnType{r.scalar(t.Key()), r.scalar(t.Elem())}
		}
	}

	// A concrete type overridden to a collection tag without matching structure.
	if ct == Map {
		return []ColumnType{Text, Text}
	}
	return []ColumnType{Text}
}

func (r *TypeRegistry) scalar(t reflect.Type) ColumnType {
	if t.Kind() == reflect.Interface {
		return Text
	}
	ct, ok := r.Resolve(t)
	if !ok || ct.IsCollection() {
		return Text
	}
	return ct
}

// Override replaces or adds the mapping for a single host type.
func (r *TypeRegistry) Override(t reflect.Type, ct ColumnType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t] = ct
}

// ReplaceAll swaps the whole mapping table. The map is copied.
// The structural collection rules are not part of the table; turn them off with
// SetCollectionRules.
func (r *TypeRegistry) ReplaceAll(mapping map[reflect.Type]ColumnType) {
	types := make(map[reflect.Type]ColumnType, len(mapping))
	for t, ct := range mapping {
		types[t] = ct
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = types
}

// SetCollectionRules turns the structural collection rules on or off. While off,
// only collection types mapped explicitly in the table are persistable.
func (r *TypeRegistry) SetCollectionRules(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.noCollections = !enabled
}

// CollectionRules reports whether the structural collection rules apply.
func (r *TypeRegistry) CollectionRules() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.noCollections
}

// Mapping returns a copy of the current mapping table.
func (r *TypeRegistry) Mapping() map[reflect.Type]ColumnType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[reflect.Type]ColumnType, len(r.types))
	for t, ct := range r.types {
		out[t] = ct
	}
	return out
}

// Len returns the number of explicit mappings.
func (r *TypeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// String renders the mapping as "type|tag" lines sorted by type name.
func (r *TypeRegistry) String() string {
	mapping := r.Mapping()
	names := make([]string, 0, len(mapping))
	byName := make(map[string]ColumnType, len(mapping))
	for t, ct := range mapping {
		names = append(names, t.String())
		byName[t.String()] = ct
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s|%s\n", name, byName[name])
	}
	return b.String()
}

// Override maps the host type T to ct.
func Override[T any](r *TypeRegistry, ct ColumnType) {
	r.Override(reflect.TypeFor[T](), ct)
}

// ResolveOf resolves the host type T.
func ResolveOf[T any](r *TypeRegistry) (ColumnType, bool) {
	return r.Resolve(reflect.TypeFor[T]())
}
