/*
Package registry maps Go host types to database column type tags.

The registry answers one question for the metadata parser: is a field of this
Go type persistable, and if so, which column type does it get?

	reg := registry.New()
	ct, ok := reg.Resolve(reflect.TypeFor[int32]()) // "int", true

Built-in mapping:

	bool            -> boolean     float64          -> double
	string          -> text        float32          -> float
	int32           -> int         []byte           -> blob
	int64, int      -> bigint      time.Time        -> timestamp
	int16           -> smallint    time.Duration    -> duration
	int8            -> tinyint     net.IP           -> inet
	uuid.UUID       -> uuid        strfmt.DateTime  -> timestamp
	strfmt.UUID     -> uuid        *inf.Dec         -> decimal
	*big.Int        -> varint

Pointers to mapped types resolve to the same tag. Slices resolve to list,
map[K]struct{} to set and every other map to map; element types are resolved
through the same table.

Overrides:
The mapping is shared configuration. Entries can be patched or the whole table
swapped at any time:

	registry.Override[int32](reg, registry.Varint)
	reg.ReplaceAll(map[reflect.Type]registry.ColumnType{...})

Changes apply to metadata derived afterwards; cached metadata must be
invalidated by the caller.

Codecs:
A Codec translates a value between its host form and the form handed to a
value marshaller. Enums are stored by name:

	registry.RegisterEnum(reg, map[Status]string{
	    StatusActive:  "ACTIVE",
	    StatusRetired: "RETIRED",
	})

Mapping files:
A YAML file can patch or replace the table by type name:

	replace: false
	types:
	  int32: varint
	  "*big.Int": decimal

The registry is safe for concurrent use.
*/
package registry
