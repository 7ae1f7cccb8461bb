/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"cmp"
	"slices"
)

// Compare orders fields for schema output: partition fields first, then
// clustering fields, then everything else. Partition and clustering fields are
// ordered by ordinal; plain fields compare equal.
func Compare(a, b *Field) int {
	if c := cmp.Compare(rank(a), rank(b)); c != 0 {
		return c
	}
	if a.partition || a.clustering {
		return cmp.Compare(a.ordinal, b.ordinal)
	}
	return 0
}

func rank(f *Field) int {
	switch {
	case f.partition:
		return 0
	case f.clustering:
		return 1
	default:
		return 2
	}
}

// SortFields sorts fields in place with Compare. Equal fields keep their order.
func SortFields(fields []*Field) {
	slices.SortStableFunc(fields, Compare)
}
