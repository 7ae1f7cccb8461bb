/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"strings"

	"github.com/suparena/entitymeta/errors"
)

// ColumnType is the database column type tag a host type maps to.
// Its string form is the CQL type name and is used verbatim in schema definitions.
type ColumnType string

const (
	Boolean   ColumnType = "boolean"
	Text      ColumnType = "text"
	ASCII     ColumnType = "ascii"
	Varchar   ColumnType = "varchar"
	Timestamp ColumnType = "timestamp"
	Date      ColumnType = "date"
	Time      ColumnType = "time"
	UUID      ColumnType = "uuid"
	TimeUUID  ColumnType = "timeuuid"
	Int       ColumnType = "int"
	BigInt    ColumnType = "bigint"
	SmallInt  ColumnType = "smallint"
	TinyInt   ColumnType = "tinyint"
	Counter   ColumnType = "counter"
	Double    ColumnType = "double"
	Float     ColumnType = "float"
	Decimal   ColumnType = "decimal"
	Varint    ColumnType = "varint"
	Blob      ColumnType = "blob"
	Inet      ColumnType = "inet"
	Duration  ColumnType = "duration"

	List ColumnType = "list"
	Set  ColumnType = "set"
	Map  ColumnType = "map"
)

var columnTypes = []ColumnType{
	Boolean, Text, ASCII, Varchar, Timestamp, Date, Time, UUID, TimeUUID,
	Int, BigInt, SmallInt, TinyInt, Counter, Double, Float, Decimal, Varint,
	Blob, Inet, Duration, List, Set, Map,
}

// String returns the CQL name of the column type
func (c ColumnType) String() string {
	return string(c)
}

// IsCollection reports whether the tag is list, set or map
func (c ColumnType) IsCollection() bool {
	return c == List || c == Set || c == Map
}

// Valid reports whether c is one of the known column types
func (c ColumnType) Valid() bool {
	for _, ct := range columnTypes {
		if ct == c {
			return true
		}
	}
	return false
}

// ColumnTypes returns every known column type
func ColumnTypes() []ColumnType {
	out := make([]ColumnType, len(columnTypes))
	copy(out, columnTypes)
	return out
}

// ParseColumnType converts a CQL type name to a ColumnType, ignoring case and surrounding space
func ParseColumnType(s string) (ColumnType, error) {
	ct := ColumnType(strings.ToLower(strings.TrimSpace(s)))
	if !ct.Valid() {
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownColumnType, s)
	}
	return ct, nil
}

// CollectionEncoding renders the schema type of a collection column, e.g. list<int>,
// set<text> or map<text,bigint>. Missing element tags default to text.
func CollectionEncoding(ct ColumnType, elems []ColumnType) string {
	elem := func(i int) ColumnType {
		if i < len(elems) && elems[i] != "" {
			return elems[i]
		}
		return Text
	}

	switch ct {
	case List, Set:
		return fmt.Sprintf("%s<%s>", ct, elem(0))
	case Map:
		return fmt.Sprintf("map<%s,%s>", elem(0), elem(1))
	default:
		return ""
	}
}
