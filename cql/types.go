/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"github.com/datastax/go-cassandra-native-protocol/datatype"
	"github.com/datastax/go-cassandra-native-protocol/primitive"
	"github.com/gocql/gocql"
	"github.com/suparena/entitymeta/metadata"
	"github.com/suparena/entitymeta/registry"
)

var primitiveTypes = map[registry.ColumnType]datatype.DataType{
	registry.ASCII:     datatype.Ascii,
	registry.BigInt:    datatype.Bigint,
	registry.Blob:      datatype.Blob,
	registry.Boolean:   datatype.Boolean,
	registry.Counter:   datatype.Counter,
	registry.Date:      datatype.Date,
	registry.Decimal:   datatype.Decimal,
	registry.Double:    datatype.Double,
	registry.Duration:  datatype.Duration,
	registry.Float:     datatype.Float,
	registry.Inet:      datatype.Inet,
	registry.Int:       datatype.Int,
	registry.SmallInt:  datatype.Smallint,
	registry.Text:      datatype.Varchar,
	registry.Time:      datatype.Time,
	registry.Timestamp: datatype.Timestamp,
	registry.TimeUUID:  datatype.Timeuuid,
	registry.TinyInt:   datatype.Tinyint,
	registry.UUID:      datatype.Uuid,
	registry.Varchar:   datatype.Varchar,
	registry.Varint:    datatype.Varint,
}

var nativeTypes = map[registry.ColumnType]gocql.Type{
	registry.ASCII:     gocql.TypeAscii,
	registry.BigInt:    gocql.TypeBigInt,
	registry.Blob:      gocql.TypeBlob,
	registry.Boolean:   gocql.TypeBoolean,
	registry.Counter:   gocql.TypeCounter,
	registry.Date:      gocql.TypeDate,
	registry.Decimal:   gocql.TypeDecimal,
	registry.Double:    gocql.TypeDouble,
	registry.Duration:  gocql.TypeDuration,
	registry.Float:     gocql.TypeFloat,
	registry.Inet:      gocql.TypeInet,
	registry.Int:       gocql.TypeInt,
	registry.SmallInt:  gocql.TypeSmallInt,
	registry.Text:      gocql.TypeText,
	registry.Time:      gocql.TypeTime,
	registry.Timestamp: gocql.TypeTimestamp,
	registry.TimeUUID:  gocql.TypeTimeUUID,
	registry.TinyInt:   gocql.TypeTinyInt,
	registry.UUID:      gocql.TypeUUID,
	registry.Varchar:   gocql.TypeVarchar,
	registry.Varint:    gocql.TypeVarint,
	registry.List:      gocql.TypeList,
	registry.Set:       gocql.TypeSet,
	registry.Map:       gocql.TypeMap,
}

// DefaultProtocol is the protocol version used when none is given
const DefaultProtocol = primitive.ProtocolVersion4

// DataType returns the native protocol type of a scalar column tag.
// Collection tags need their element types and report false; use FieldDataType.
func DataType(ct registry.ColumnType) (datatype.DataType, bool) {
	dt, ok := primitiveTypes[ct]
	return dt, ok
}

// FieldDataType returns the native protocol type of a column, building list, set
// and map types from the element tags of collection columns.
func FieldDataType(f *metadata.Field) (datatype.DataType, bool) {
	elems := elements(f)
	switch f.ColumnType() {
	case registry.List:
		if elem, ok := DataType(elems[0]); ok {
			return datatype.NewListType(elem), true
		}
	case registry.Set:
		if elem, ok := DataType(elems[0]); ok {
			return datatype.NewSetType(elem), true
		}
	case registry.Map:
		key, ok := DataType(elems[0])
		if !ok {
			return nil, false
		}
		if value, ok := DataType(elems[1]); ok {
			return datatype.NewMapType(key, value), true
		}
	default:
		return DataType(f.ColumnType())
	}
	return nil, false
}

// TypeInfo returns the gocql type info used to marshal values of a column.
// A zero proto selects DefaultProtocol.
func TypeInfo(f *metadata.Field, proto primitive.ProtocolVersion) gocql.TypeInfo {
	if proto == 0 {
		proto = DefaultProtocol
	}
	version := byte(proto)

	ct := f.ColumnType()
	if !ct.IsCollection() {
		return native(version, ct)
	}

	elems := elements(f)
	info := gocql.CollectionType{
		NativeType: gocql.NewNativeType(version, nativeTypes[ct], ""),
		Elem:       native(version, elems[0]),
	}
	if ct == registry.Map {
		info.Key = native(version, elems[0])
		info.Elem = native(version, elems[1])
	}
	return info
}

func native(version byte, ct registry.ColumnType) gocql.NativeType {
	typ, ok := nativeTypes[ct]
	if !ok {
		return gocql.NewNativeType(version, gocql.TypeCustom, ct.String())
	}
	return gocql.NewNativeType(version, typ, "")
}

// elements pads the element tags of f so list and set have one entry and map two
func elements(f *metadata.Field) []registry.ColumnType {
	elems := f.ElementTypes()
	for len(elems) < 2 {
		elems = append(elems, registry.Text)
	}
	return elems
}
