/*
Package metadata derives persistence metadata from annotated Go structs.

A Parser walks a struct type and produces an Entity: the table name, declared
indexes, the plain columns in declaration order and the primary key structure.

	p := metadata.NewParser(registry.New(), metadata.WithLogger(logger))
	entity, err := metadata.ParseOf[Reading](p)

Declaring entities:
Columns are the struct's own fields whose type resolves in the type registry and
that expose a getter/setter pair on the pointer receiver: Get<Field>, Is<Field>
or <Field> for reading and Set<Field> for writing. Anonymous fields are not
walked. The cql struct tag adds the remaining facts:

	type ReadingKey struct {
	    bucket *BucketKey `cql:",embedded"`
	    at     time.Time  `cql:",order=desc"`
	    seq    int32
	}

	type Reading struct {
	    key     *ReadingKey `cql:",embedded"`
	    value   float64     `cql:"reading_value"`
	    scratch string      `cql:"-"`
	}

Tag options:

	-              never persisted
	name           column name, defaults to the field name
	id             single partition column, or an embedded key for struct types
	embedded       embedded key
	partition      partition key column
	clustering     clustering key column
	ordinal=N      position inside the key segment, defaults to declaration order
	order=asc|desc clustering order
	static         static column
	auto           value generated by Entity.ApplyGenerated when zero

Inside an embedded key every field is a partition column unless the key embeds a
further partition key, in which case its own fields default to clustering. If an
entity declares an embedded key and flat key columns at the same time the
embedded key is used and the flat columns become plain columns.

Optional methods TableName() string and Indexes() []Index declare the table and
its secondary indexes.

Column order:
Compare orders partition columns before clustering columns before plain columns,
partition and clustering columns by ordinal. Entity.Columns returns columns in
that order.

Values:
Field.Get and Field.Set move host values; Field.Read and Field.Write also run the
registry codec. Field.Value and Field.SetValue log faults instead of returning
them. Entity.Values and Entity.SetValues work on whole entities, reaching
embedded key columns through the key's owner field.
*/
package metadata
