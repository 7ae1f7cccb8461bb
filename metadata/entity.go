/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"fmt"
	"reflect"
	"strings"
)

// Index is a declared secondary index
type Index struct {
	Name    string
	Columns []string
}

// Tabler lets an entity declare its table name.
type Tabler interface {
	TableName() string
}

// Indexer lets an entity declare its secondary indexes.
type Indexer interface {
	Indexes() []Index
}

// Entity is the persistence metadata derived from one struct type.
type Entity struct {
	typ     reflect.Type
	table   string
	indexes []Index
	fields  []*Field
	key     *PrimaryKey
}

// Type returns the entity struct type
func (e *Entity) Type() reflect.Type { return e.typ }

// Name returns the Go type name
func (e *Entity) Name() string { return e.typ.Name() }

// TableName returns the declared table name, or the type name
func (e *Entity) TableName() string { return e.table }

// Indexes returns the declared indexes in declaration order
func (e *Entity) Indexes() []Index {
	out := make([]Index, len(e.indexes))
	for i, idx := range e.indexes {
		out[i] = Index{Name: idx.Name, Columns: append([]string(nil), idx.Columns...)}
	}
	return out
}

// Fields returns the non-key fields in declaration order
func (e *Entity) Fields() []*Field { return cloneFields(e.fields) }

// PrimaryKey returns the key descriptor or nil when the entity declares none
func (e *Entity) PrimaryKey() *PrimaryKey { return e.key }

// HasPrimaryKey reports whether any key column was derived
func (e *Entity) HasPrimaryKey() bool {
	return e.key != nil && e.key.Len() > 0
}

// PartitionColumns returns the partition key columns in ordinal order
func (e *Entity) PartitionColumns() []*Field { return e.key.PartitionColumns() }

// ClusteringColumns returns the clustering key columns in ordinal order
func (e *Entity) ClusteringColumns() []*Field { return e.key.ClusteringColumns() }

// Columns returns every column: partition, then clustering, then plain fields.
func (e *Entity) Columns() []*Field {
	out := e.key.Columns()
	return append(out, e.fields...)
}

// ColumnNames returns the names of Columns
func (e *Entity) ColumnNames() []string {
	cols := e.Columns()
	names := make([]string, len(cols))
	for i, f := range cols {
		names[i] = f.columnName
	}
	return names
}

// Column looks a column up by column name
func (e *Entity) Column(name string) (*Field, bool) {
	for _, f := range e.Columns() {
		if f.columnName == name {
			return f, true
		}
	}
	return nil, false
}

// Field looks a column up by Go field name
func (e *Entity) Field(name string) (*Field, bool) {
	for _, f := range e.Columns() {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

func (e *Entity) String() string {
	cols := e.Columns()
	defs := make([]string, len(cols))
	for i, f := range cols {
		defs[i] = f.String()
	}
	return fmt.Sprintf("%s(%s)", e.table, strings.Join(defs, ", "))
}
