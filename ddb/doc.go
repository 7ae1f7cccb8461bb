/*
Package ddb projects entity metadata onto a single-table DynamoDB layout.

Every item carries a PK and SK attribute built from the entity's key columns,
plus a PK<n> attribute per declared index that backs the n-th global secondary
index. Key attributes are described by index maps: templates whose {column}
macros are expanded from the entity's column values.

	e, _ := entitymeta.For[testmodels.RatingRecord]()
	item, err := ddb.MarshalItem(e, record)
*/
package ddb
