/*
Package entitymeta derives persistence metadata from Go struct types.

Given a struct, entitymeta works out which fields are persisted, the column name
and column type of each, how the primary key is composed and how to read and
write every field through the type's accessor methods. The derivation runs once
per type and is cached.

The library is organized in layers:
  - registry: host type to column type mapping, codecs and YAML mapping files
  - metadata: the entity parser and the Field, PrimaryKey and Entity descriptors
  - entitymeta: the Context that owns a registry and caches derived entities
  - cql, ddb: projections of an entity onto Cassandra and DynamoDB

Fields opt in through getter and setter methods on the pointer type and are
shaped with the cql struct tag:

	type Reading struct {
		Key   ReadingKey `cql:",embedded"`
		Value float64    `cql:"value"`
		Note  string     `cql:"-"`
	}

	type ReadingKey struct {
		Sensor string    `cql:"sensor,partition"`
		At     time.Time `cql:"at,clustering,order=desc"`
	}

Basic Usage:

	// Derive (or fetch the cached) metadata
	e, err := entitymeta.For[Reading]()

	// Read every column in wire form
	values, err := e.Values(&reading)

	// Render the Cassandra schema
	stmt, err := cql.CreateTable(e, cql.TableOptions{Keyspace: "metrics"})

A Context built with NewFromConfig picks up log level, field access mode and
type overrides from entitymeta.yaml and ENTITYMETA_* environment variables.
*/
package entitymeta
