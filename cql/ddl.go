/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"fmt"
	"strings"

	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/metadata"
)

// TableOptions controls the rendered DDL
type TableOptions struct {
	// Keyspace qualifies table and index names when set
	Keyspace string
	// IfNotExists adds IF NOT EXISTS to every statement
	IfNotExists bool
}

func (o TableOptions) qualify(name string) string {
	if o.Keyspace == "" {
		return name
	}
	return o.Keyspace + "." + name
}

func (o TableOptions) create(object string) string {
	if o.IfNotExists {
		return "CREATE " + object + " IF NOT EXISTS "
	}
	return "CREATE " + object + " "
}

// CreateTable renders the CREATE TABLE statement of e.
// Columns are listed partition first, then clustering, then plain fields. A
// CLUSTERING ORDER BY clause is added when any clustering column sorts descending.
func CreateTable(e *metadata.Entity, opts TableOptions) (string, error) {
	if !e.HasPrimaryKey() {
		return "", fmt.Errorf("%w: %s", errors.ErrNoPrimaryKey, e.Name())
	}
	partition := e.PartitionColumns()
	if len(partition) == 0 {
		return "", fmt.Errorf("%w: %s has no partition column", errors.ErrNoPrimaryKey, e.Name())
	}

	var sb strings.Builder
	sb.WriteString(opts.create("TABLE"))
	sb.WriteString(opts.qualify(e.TableName()))
	sb.WriteString(" (\n")

	for _, f := range e.Columns() {
		sb.WriteString(fmt.Sprintf("    %s %s", f.ColumnName(), f.Definition()))
		if f.IsStatic() && !f.IsPrimary() {
			sb.WriteString(" STATIC")
		}
		sb.WriteString(",\n")
	}

	pk := columnNames(partition)
	if len(partition) > 1 {
		pk = "(" + pk + ")"
	}
	clustering := e.ClusteringColumns()
	if len(clustering) > 0 {
		sb.WriteString(fmt.Sprintf("    PRIMARY KEY (%s, %s)\n", pk, columnNames(clustering)))
	} else {
		sb.WriteString(fmt.Sprintf("    PRIMARY KEY (%s)\n", pk))
	}
	sb.WriteString(")")

	if order := clusteringOrder(clustering); order != "" {
		sb.WriteString(" WITH CLUSTERING ORDER BY (")
		sb.WriteString(order)
		sb.WriteString(")")
	}
	sb.WriteString(";")
	return sb.String(), nil
}

// CreateIndexes renders one CREATE INDEX statement per indexed column. A
// single-column index keeps its declared name; multi-column indexes are split
// into <name>_<column> indexes.
func CreateIndexes(e *metadata.Entity, opts TableOptions) ([]string, error) {
	var stmts []string
	for _, idx := range e.Indexes() {
		for _, col := range idx.Columns {
			if _, ok := e.Column(col); !ok {
				return nil, fmt.Errorf("index %s references unknown column %s on %s", idx.Name, col, e.TableName())
			}

			name := idx.Name
			if len(idx.Columns) > 1 {
				name = idx.Name + "_" + col
			}
			stmts = append(stmts, fmt.Sprintf("%s%s ON %s (%s);",
				opts.create("INDEX"), name, opts.qualify(e.TableName()), col))
		}
	}
	return stmts, nil
}

func columnNames(fields []*metadata.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.ColumnName()
	}
	return strings.Join(names, ", ")
}

func clusteringOrder(fields []*metadata.Field) string {
	descending := false
	parts := make([]string, len(fields))
	for i, f := range fields {
		if f.SortOrder() == metadata.Descending {
			descending = true
		}
		parts[i] = f.ColumnName() + " " + f.SortOrder().String()
	}
	if !descending {
		return ""
	}
	return strings.Join(parts, ", ")
}
