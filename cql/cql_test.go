/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"reflect"
	"testing"
	"time"

	"github.com/datastax/go-cassandra-native-protocol/primitive"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/metadata"
	"github.com/suparena/entitymeta/registry"
	"github.com/suparena/entitymeta/testmodels"
)

func parse[T any](t *testing.T) *metadata.Entity {
	t.Helper()
	reg := registry.New()
	testmodels.Register(reg)
	e, err := metadata.ParseOf[T](metadata.NewParser(reg))
	require.NoError(t, err)
	return e
}

type ledger struct {
	Tags    []uuid.UUID            `cql:"tags"`
	Members map[uuid.UUID]struct{} `cql:"members"`
	Labels  map[uuid.UUID]string   `cql:"labels"`
}

type keyless struct {
	Name string `cql:"name"`
}

func TestDataType(t *testing.T) {
	dt, ok := DataType(registry.Text)
	require.True(t, ok)
	assert.Equal(t, primitive.DataTypeCodeVarchar, dt.GetDataTypeCode())

	dt, ok = DataType(registry.TimeUUID)
	require.True(t, ok)
	assert.Equal(t, primitive.DataTypeCodeTimeuuid, dt.GetDataTypeCode())

	_, ok = DataType(registry.List)
	assert.False(t, ok)
	_, ok = DataType("geometry")
	assert.False(t, ok)
}

func TestFieldDataType(t *testing.T) {
	e := parse[testmodels.RatingRecord](t)

	tests := []struct {
		column string
		code   primitive.DataTypeCode
	}{
		{"player_id", primitive.DataTypeCodeVarchar},
		{"recorded_at", primitive.DataTypeCodeTimestamp},
		{"record_id", primitive.DataTypeCodeUuid},
		{"deviation", primitive.DataTypeCodeFloat},
		{"opponents", primitive.DataTypeCodeList},
		{"breakdown", primitive.DataTypeCodeMap},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			f, ok := e.Column(tt.column)
			require.True(t, ok)
			dt, ok := FieldDataType(f)
			require.True(t, ok)
			assert.Equal(t, tt.code, dt.GetDataTypeCode())
		})
	}
}

func TestTypeInfo(t *testing.T) {
	e := parse[testmodels.RatingRecord](t)

	games, _ := e.Column("games")
	info := TypeInfo(games, 0)
	assert.Equal(t, gocql.TypeInt, info.Type())
	assert.Equal(t, byte(DefaultProtocol), info.Version())

	breakdown, _ := e.Column("breakdown")
	coll, ok := TypeInfo(breakdown, primitive.ProtocolVersion3).(gocql.CollectionType)
	require.True(t, ok)
	assert.Equal(t, gocql.TypeMap, coll.Type())
	assert.Equal(t, gocql.TypeText, coll.Key.Type())
	assert.Equal(t, gocql.TypeDouble, coll.Elem.Type())

	opponents, _ := e.Column("opponents")
	coll, ok = TypeInfo(opponents, 0).(gocql.CollectionType)
	require.True(t, ok)
	assert.Equal(t, gocql.TypeList, coll.Type())
	assert.Equal(t, gocql.TypeText, coll.Elem.Type())
}

func TestMarshalValues(t *testing.T) {
	e := parse[testmodels.RatingRecord](t)

	id := uuid.New()
	rec := &testmodels.RatingRecord{
		Key: testmodels.RatingRecordKey{
			PlayerID:   "p-1",
			SystemID:   "elo",
			RecordedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			RecordID:   id,
		},
		Rating:    1512.5,
		Games:     12,
		Status:    testmodels.RecordConfirmed,
		Opponents: []string{"p-2", "p-3"},
		Breakdown: map[string]float64{"blitz": 1400},
	}

	out, err := MarshalValues(e, rec, DefaultProtocol)
	require.NoError(t, err)
	assert.Len(t, out, len(e.Columns()))

	assert.Equal(t, []byte("p-1"), out["player_id"])
	assert.Equal(t, id[:], out["record_id"])
	assert.Equal(t, []byte("CONFIRMED"), out["status"])

	rating, _ := e.Column("rating")
	want, err := gocql.Marshal(TypeInfo(rating, DefaultProtocol), 1512.5)
	require.NoError(t, err)
	assert.Equal(t, want, out["rating"])

	var opponents []string
	f, _ := e.Column("opponents")
	require.NoError(t, gocql.Unmarshal(TypeInfo(f, DefaultProtocol), out["opponents"], &opponents))
	assert.Equal(t, rec.Opponents, opponents)

	var at time.Time
	f, _ = e.Column("recorded_at")
	require.NoError(t, gocql.Unmarshal(TypeInfo(f, DefaultProtocol), out["recorded_at"], &at))
	assert.True(t, at.Equal(rec.Key.RecordedAt))
}

func TestMarshalValuesRejectsNonEntity(t *testing.T) {
	e := parse[testmodels.RatingRecord](t)
	_, err := MarshalValues(e, &testmodels.RatingSystem{}, DefaultProtocol)
	assert.Error(t, err)
}

func TestMarshalUUIDCollections(t *testing.T) {
	reg := registry.New()
	e, err := metadata.ParseOf[ledger](metadata.NewParser(reg, metadata.WithFieldAccess()))
	require.NoError(t, err)

	a, b := uuid.New(), uuid.New()
	out, err := MarshalValues(e, &ledger{
		Tags:    []uuid.UUID{a, b},
		Members: map[uuid.UUID]struct{}{a: {}},
		Labels:  map[uuid.UUID]string{b: "owner"},
	}, DefaultProtocol)
	require.NoError(t, err)

	var tags []gocql.UUID
	f, _ := e.Column("tags")
	require.NoError(t, gocql.Unmarshal(TypeInfo(f, DefaultProtocol), out["tags"], &tags))
	assert.Equal(t, []gocql.UUID{gocql.UUID(a), gocql.UUID(b)}, tags)

	var members []gocql.UUID
	f, _ = e.Column("members")
	require.NoError(t, gocql.Unmarshal(TypeInfo(f, DefaultProtocol), out["members"], &members))
	assert.Equal(t, []gocql.UUID{gocql.UUID(a)}, members)

	labels := map[gocql.UUID]string{}
	f, _ = e.Column("labels")
	require.NoError(t, gocql.Unmarshal(TypeInfo(f, DefaultProtocol), out["labels"], &labels))
	assert.Equal(t, "owner", labels[gocql.UUID(b)])
}

func TestNormalize(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, gocql.UUID(id), normalize(id))
	assert.Equal(t, gocql.UUID(id), normalize(&id))
	assert.Nil(t, normalize((*uuid.UUID)(nil)))
	assert.Nil(t, normalize([]uuid.UUID(nil)))
	assert.Equal(t, []string{"a"}, normalize([]string{"a"}))
	assert.True(t, hasUUID(reflect.TypeFor[map[string][]uuid.UUID]()))
	assert.False(t, hasUUID(reflect.TypeFor[map[string]int]()))
}

func TestCreateTable(t *testing.T) {
	e := parse[testmodels.RatingRecord](t)

	stmt, err := CreateTable(e, TableOptions{Keyspace: "ratings", IfNotExists: true})
	require.NoError(t, err)

	want := `CREATE TABLE IF NOT EXISTS ratings.rating_records (
    player_id text,
    system_id text,
    recorded_at timestamp,
    record_id uuid,
    rating double,
    deviation float,
    games int,
    status text,
    opponents list<text>,
    breakdown map<text,double>,
    notes text STATIC,
    PRIMARY KEY ((player_id, system_id), recorded_at, record_id)
) WITH CLUSTERING ORDER BY (recorded_at DESC, record_id ASC);`
	assert.Equal(t, want, stmt)
}

func TestCreateTableSingleKey(t *testing.T) {
	e := parse[testmodels.RatingSystem](t)

	stmt, err := CreateTable(e, TableOptions{})
	require.NoError(t, err)
	assert.Contains(t, stmt, "CREATE TABLE rating_systems (\n    id text,\n")
	assert.Contains(t, stmt, "    PRIMARY KEY (id)\n);")
	assert.NotContains(t, stmt, "CLUSTERING ORDER")
	assert.NotContains(t, stmt, "draft")
}

func TestCreateTableWithoutKey(t *testing.T) {
	e, err := metadata.ParseOf[keyless](metadata.NewParser(nil, metadata.WithFieldAccess()))
	require.NoError(t, err)

	_, err = CreateTable(e, TableOptions{})
	assert.ErrorIs(t, err, errors.ErrNoPrimaryKey)
}

func TestCreateIndexes(t *testing.T) {
	e := parse[testmodels.RatingSystem](t)

	stmts, err := CreateIndexes(e, TableOptions{Keyspace: "ratings", IfNotExists: true})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"CREATE INDEX IF NOT EXISTS rating_systems_by_name ON ratings.rating_systems (name);",
	}, stmts)

	stmts, err = CreateIndexes(parse[testmodels.RatingRecord](t), TableOptions{})
	require.NoError(t, err)
	assert.Empty(t, stmts)
}
