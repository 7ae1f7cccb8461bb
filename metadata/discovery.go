/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"reflect"
	"strings"
)

// findAccessor looks for the getter/setter pair of field sf on the method set
// of *owner. Names compare case-insensitively:
//
//	getter: Get<Field>, Is<Field> or <Field>, no arguments, one result
//	setter: Set<Field>, one argument, no results
//
// With fieldAccess set, an exported field without a pair is accessed directly.
func findAccessor(owner reflect.Type, sf reflect.StructField, fieldAccess bool) (Accessor, bool) {
	pt := reflect.PointerTo(owner)
	name := strings.ToLower(sf.Name)

	getterRank := -1
	var getter, setter reflect.Method
	var hasSetter bool

	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		mt := m.Type
		lower := strings.ToLower(m.Name)

		if rank := getterRankOf(lower, name); rank >= 0 && mt.NumIn() == 1 && mt.NumOut() == 1 {
			if getterRank < 0 || rank < getterRank {
				getter, getterRank = m, rank
			}
			continue
		}
		if lower == "set"+name && mt.NumIn() == 2 && mt.NumOut() == 0 {
			setter, hasSetter = m, true
		}
	}

	if getterRank >= 0 && hasSetter {
		return methodAccessor{getter: getter, setter: setter}, true
	}
	if fieldAccess && sf.IsExported() {
		return fieldAccessor{name: sf.Name, index: sf.Index}, true
	}
	return nil, false
}

func getterRankOf(method, field string) int {
	switch method {
	case "get" + field:
		return 0
	case "is" + field:
		return 1
	case field:
		return 2
	default:
		return -1
	}
}
