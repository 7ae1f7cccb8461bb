/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// TagName is the struct tag key read by the Parser.
const TagName = "cql"

// fieldTag is the parsed form of a `cql:"..."` tag:
//
//	cql:"-"                              transient
//	cql:"column_name"                    column name override
//	cql:",id"                            simple or embedded primary key
//	cql:",embedded"                      embedded key
//	cql:",partition,ordinal=1"           partition key column
//	cql:",clustering,order=desc"         clustering key column
//	cql:",static" / cql:",auto"
type fieldTag struct {
	column     string
	transient  bool
	id         bool
	embedded   bool
	partition  bool
	clustering bool
	static     bool
	auto       bool
	ordinal    int
	hasOrdinal bool
	order      SortOrder
}

func (t fieldTag) role() KeyRole {
	switch {
	case t.partition:
		return RolePartition
	case t.clustering:
		return RoleClustering
	default:
		return RoleNone
	}
}

// parseTag reads the cql tag of sf. Invalid options are skipped and reported in
// the returned error; the tag is still usable.
func parseTag(sf reflect.StructField) (fieldTag, error) {
	var tag fieldTag

	raw, ok := sf.Tag.Lookup(TagName)
	if !ok {
		return tag, nil
	}
	if raw == "-" {
		tag.transient = true
		return tag, nil
	}

	parts := strings.Split(raw, ",")
	tag.column = strings.TrimSpace(parts[0])

	var bad []string
	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)
		key, value, _ := strings.Cut(opt, "=")
		switch strings.ToLower(key) {
		case "":
		case "id":
			tag.id = true
		case "embedded":
			tag.embedded = true
		case "partition":
			tag.partition = true
		case "clustering":
			tag.clustering = true
		case "static":
			tag.static = true
		case "auto":
			tag.auto = true
		case "ordinal":
			n, err := strconv.Atoi(value)
			if err != nil {
				bad = append(bad, opt)
				continue
			}
			tag.ordinal = n
			tag.hasOrdinal = true
		case "order":
			order, err := ParseSortOrder(value)
			if err != nil {
				bad = append(bad, opt)
				continue
			}
			tag.order = order
		default:
			bad = append(bad, opt)
		}
	}

	if len(bad) > 0 {
		return tag, fmt.Errorf("ignored tag options %s", strings.Join(bad, ","))
	}
	return tag, nil
}
