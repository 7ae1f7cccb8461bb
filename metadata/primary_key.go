/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"reflect"
)

// PrimaryKey is the shape of an entity key: a partition segment, a clustering
// segment and, for embedded keys, an optional nested partition key.
//
// A flat key lives directly on the entity. An embedded key is a single field whose
// struct type holds the key fields; Owner is that field.
type PrimaryKey struct {
	typ          reflect.Type
	partition    []*Field
	clustering   []*Field
	partitionKey *PrimaryKey
	owner        *Field
	embedded     bool
}

// Type returns the struct type holding the key fields. For a flat key this is the
// entity type.
func (pk *PrimaryKey) Type() reflect.Type { return pk.typ }

// IsEmbedded reports whether the key is declared through an embedded key field
func (pk *PrimaryKey) IsEmbedded() bool { return pk.embedded }

// Owner returns the embedded field holding the key, or nil for a flat key or an
// embedded field without an accessor pair.
func (pk *PrimaryKey) Owner() *Field { return pk.owner }

// PartitionKey returns the nested embedded partition key, if any
func (pk *PrimaryKey) PartitionKey() *PrimaryKey { return pk.partitionKey }

// Partition returns the partition fields declared directly on this key, by ordinal
func (pk *PrimaryKey) Partition() []*Field { return cloneFields(pk.partition) }

// Clustering returns the clustering fields declared directly on this key, by ordinal
func (pk *PrimaryKey) Clustering() []*Field { return cloneFields(pk.clustering) }

// PartitionColumns returns every partition column: the nested partition key's
// columns first, then this key's own partition fields.
func (pk *PrimaryKey) PartitionColumns() []*Field {
	if pk == nil {
		return nil
	}
	var out []*Field
	if pk.partitionKey != nil {
		out = append(out, pk.partitionKey.PartitionColumns()...)
	}
	return append(out, pk.partition...)
}

// ClusteringColumns returns every clustering column, nested key first.
func (pk *PrimaryKey) ClusteringColumns() []*Field {
	if pk == nil {
		return nil
	}
	var out []*Field
	if pk.partitionKey != nil {
		out = append(out, pk.partitionKey.ClusteringColumns()...)
	}
	return append(out, pk.clustering...)
}

// Columns returns partition columns followed by clustering columns
func (pk *PrimaryKey) Columns() []*Field {
	return append(pk.PartitionColumns(), pk.ClusteringColumns()...)
}

// Len returns the number of key columns
func (pk *PrimaryKey) Len() int {
	return len(pk.Columns())
}

func (pk *PrimaryKey) add(f *Field) {
	switch {
	case f.partition:
		if !f.ordinalSet {
			f.ordinal = len(pk.partition)
		}
		pk.partition = append(pk.partition, f)
	case f.clustering:
		if !f.ordinalSet {
			f.ordinal = len(pk.clustering)
		}
		pk.clustering = append(pk.clustering, f)
	}
}

func (pk *PrimaryKey) sort() {
	SortFields(pk.partition)
	SortFields(pk.clustering)
	if pk.partitionKey != nil {
		pk.partitionKey.sort()
	}
}

func cloneFields(fields []*Field) []*Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]*Field, len(fields))
	copy(out, fields)
	return out
}
