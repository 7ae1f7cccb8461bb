/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"fmt"
	"strings"
)

// KeyRole is the traversal context of the structural walk and the role a field
// takes inside a primary key.
type KeyRole int

const (
	RoleNone KeyRole = iota
	RolePartition
	RoleClustering
)

func (r KeyRole) String() string {
	switch r {
	case RolePartition:
		return "partition"
	case RoleClustering:
		return "clustering"
	default:
		return "none"
	}
}

// SortOrder is the clustering order of a clustering column.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

// ParseSortOrder accepts asc/desc in any case.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("invalid sort order %q", s)
	}
}
