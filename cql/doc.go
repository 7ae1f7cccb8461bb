/*
Package cql projects entity metadata onto Cassandra.

It translates column type tags into native protocol data types and gocql type
infos, marshals entity values into their wire encoding and renders the CREATE
TABLE and CREATE INDEX statements of an entity.

	e, _ := entitymeta.For[testmodels.RatingRecord]()
	stmt, err := cql.CreateTable(e, cql.TableOptions{Keyspace: "ratings", IfNotExists: true})
*/
package cql
