/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"reflect"
	"testing"

	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/registry"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustParse[T any](t *testing.T, p *Parser) *Entity {
	t.Helper()
	e, err := ParseOf[T](p)
	if err != nil {
		t.Fatalf("Parse(%v) failed: %v", reflect.TypeFor[T](), err)
	}
	return e
}

func columnNames(fields []*Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.ColumnName()
	}
	return names
}

func TestParseNotStruct(t *testing.T) {
	p := NewParser(nil)

	for _, typ := range []reflect.Type{nil, reflect.TypeFor[int](), reflect.TypeFor[*[]string]()} {
		_, err := p.Parse(typ)
		if !errors.IsNotStruct(err) {
			t.Errorf("Parse(%v) error = %v, want ErrNotStruct", typ, err)
		}
	}

	// pointers are unwrapped
	e, err := p.Parse(reflect.TypeFor[**user]())
	if err != nil {
		t.Fatalf("Parse(**user) failed: %v", err)
	}
	if e.Type() != reflect.TypeFor[user]() {
		t.Errorf("Type() = %v, want user", e.Type())
	}
}

func TestParseFlatKey(t *testing.T) {
	e := mustParse[user](t, NewParser(nil))

	if e.TableName() != "users" {
		t.Errorf("TableName() = %q, want users", e.TableName())
	}
	idx := e.Indexes()
	if len(idx) != 1 || idx[0].Name != "users_by_name" || !reflect.DeepEqual(idx[0].Columns, []string{"name"}) {
		t.Errorf("Indexes() = %+v", idx)
	}

	pk := e.PrimaryKey()
	if pk == nil {
		t.Fatal("PrimaryKey() = nil")
	}
	if pk.IsEmbedded() || pk.Owner() != nil {
		t.Error("flat key reported as embedded")
	}
	if got := columnNames(e.PartitionColumns()); !reflect.DeepEqual(got, []string{"user_id"}) {
		t.Errorf("PartitionColumns() = %v", got)
	}
	if got := e.ClusteringColumns(); len(got) != 0 {
		t.Errorf("ClusteringColumns() = %v, want none", columnNames(got))
	}

	id, _ := e.Column("user_id")
	if id.ColumnType() != registry.UUID || !id.IsPartition() || id.Ordinal() != 0 || !id.IsAutoGenerate() {
		t.Errorf("user_id = %s partition=%v ordinal=%d", id, id.IsPartition(), id.Ordinal())
	}

	want := []string{"name", "age", "tags", "scores", "roles", "attrs", "created_at"}
	if got := columnNames(e.Fields()); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestParseExclusions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := mustParse[user](t, NewParser(nil, WithLogger(zap.New(core))))

	for _, name := range []string{"secret", "nickname", "inbox"} {
		if _, ok := e.Field(name); ok {
			t.Errorf("field %s should be excluded", name)
		}
	}

	reasons := map[string]string{}
	for _, entry := range logs.FilterMessage("field excluded").All() {
		ctx := entry.ContextMap()
		reasons[ctx["field"].(string)] = ctx["reason"].(string)
	}
	expected := map[string]string{
		"secret":   "transient",
		"nickname": "no accessor pair",
		"inbox":    "unmapped type",
	}
	for field, reason := range expected {
		if reasons[field] != reason {
			t.Errorf("exclusion of %s logged as %q, want %q", field, reasons[field], reason)
		}
	}
}

func TestCollectionEncoding(t *testing.T) {
	e := mustParse[user](t, NewParser(nil))

	tests := []struct {
		column   string
		tag      registry.ColumnType
		encoding string
	}{
		{"tags", registry.List, "list<text>"},
		{"scores", registry.Map, "map<text,double>"},
		{"roles", registry.Set, "set<text>"},
		{"attrs", registry.Map, "map<text,text>"},
		{"name", registry.Text, ""},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			f, ok := e.Column(tt.column)
			if !ok {
				t.Fatalf("column %s missing", tt.column)
			}
			if f.ColumnType() != tt.tag {
				t.Errorf("ColumnType() = %s, want %s", f.ColumnType(), tt.tag)
			}
			if f.CollectionEncoding() != tt.encoding {
				t.Errorf("CollectionEncoding() = %q, want %q", f.CollectionEncoding(), tt.encoding)
			}
			if f.IsCollection() != (tt.encoding != "") {
				t.Errorf("IsCollection() = %v", f.IsCollection())
			}
		})
	}
}

func TestEmbeddedKey(t *testing.T) {
	e := mustParse[event](t, NewParser(nil))

	pk := e.PrimaryKey()
	if pk == nil || !pk.IsEmbedded() {
		t.Fatalf("PrimaryKey() = %+v, want embedded key", pk)
	}
	if pk.Type() != reflect.TypeFor[eventKey]() {
		t.Errorf("key Type() = %v", pk.Type())
	}
	if pk.Owner() == nil || pk.Owner().Name() != "key" {
		t.Errorf("Owner() = %v, want key", pk.Owner())
	}

	partition := e.PartitionColumns()
	if got := columnNames(partition); !reflect.DeepEqual(got, []string{"day", "source"}) {
		t.Errorf("PartitionColumns() = %v, want [day source]", got)
	}
	for i, f := range partition {
		if !f.IsPartition() || f.Ordinal() != i {
			t.Errorf("%s partition=%v ordinal=%d", f.ColumnName(), f.IsPartition(), f.Ordinal())
		}
	}

	if got := columnNames(e.Fields()); !reflect.DeepEqual(got, []string{"payload"}) {
		t.Errorf("Fields() = %v, want [payload]", got)
	}
	if _, ok := e.Column("key"); ok {
		t.Error("embedded key field must not be a column")
	}
}

func TestNestedEmbeddedKey(t *testing.T) {
	e := mustParse[reading](t, NewParser(nil))

	pk := e.PrimaryKey()
	if pk.PartitionKey() == nil {
		t.Fatal("PartitionKey() = nil, want nested key")
	}
	if len(pk.Partition()) != 0 {
		t.Errorf("own partition fields = %v, want none", columnNames(pk.Partition()))
	}
	if got := columnNames(e.PartitionColumns()); !reflect.DeepEqual(got, []string{"tenant", "region"}) {
		t.Errorf("PartitionColumns() = %v", got)
	}

	clustering := e.ClusteringColumns()
	if got := columnNames(clustering); !reflect.DeepEqual(got, []string{"at", "seq"}) {
		t.Fatalf("ClusteringColumns() = %v", got)
	}
	if clustering[0].SortOrder() != Descending || clustering[1].SortOrder() != Ascending {
		t.Errorf("sort orders = %s, %s", clustering[0].SortOrder(), clustering[1].SortOrder())
	}

	want := []string{"tenant", "region", "at", "seq", "value"}
	if got := e.ColumnNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ColumnNames() = %v, want %v", got, want)
	}
}

func TestEmbeddedKeyWinsOverFlatKey(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	e := mustParse[conflicted](t, NewParser(nil, WithLogger(zap.New(core))))

	if !e.PrimaryKey().IsEmbedded() {
		t.Fatal("embedded key should win")
	}
	if got := columnNames(e.PartitionColumns()); !reflect.DeepEqual(got, []string{"day", "source"}) {
		t.Errorf("PartitionColumns() = %v", got)
	}

	flat, ok := e.Column("flat")
	if !ok {
		t.Fatal("demoted column flat missing")
	}
	if flat.IsPrimary() {
		t.Error("demoted column still flagged as key")
	}
	if got := columnNames(e.Fields()); !reflect.DeepEqual(got, []string{"flat", "note"}) {
		t.Errorf("Fields() = %v", got)
	}
	if logs.FilterMessage("entity declares an embedded key, key tag ignored").Len() != 1 {
		t.Errorf("expected one conflict warning, got %v", logs.All())
	}
}

func TestFlatCompositeKey(t *testing.T) {
	e := mustParse[timeline](t, NewParser(nil))

	if got := columnNames(e.PartitionColumns()); !reflect.DeepEqual(got, []string{"owner", "bucket"}) {
		t.Errorf("PartitionColumns() = %v", got)
	}
	clustering := e.ClusteringColumns()
	if got := columnNames(clustering); !reflect.DeepEqual(got, []string{"seq", "ts"}) {
		t.Errorf("ClusteringColumns() = %v", got)
	}
	if clustering[1].SortOrder() != Descending {
		t.Errorf("ts order = %s, want DESC", clustering[1].SortOrder())
	}

	body, _ := e.Column("body")
	if !body.IsStatic() || body.IsPrimary() {
		t.Errorf("body static=%v primary=%v", body.IsStatic(), body.IsPrimary())
	}
}

func TestAnonymousFieldsSkipped(t *testing.T) {
	e := mustParse[derived](t, NewParser(nil))

	if got := e.ColumnNames(); !reflect.DeepEqual(got, []string{"label"}) {
		t.Errorf("ColumnNames() = %v, want [label]", got)
	}
	if e.PrimaryKey() != nil || e.HasPrimaryKey() {
		t.Error("derived declares no key")
	}
}

func TestFieldAccessOption(t *testing.T) {
	e := mustParse[record](t, NewParser(nil))
	if cols := e.ColumnNames(); len(cols) != 0 {
		t.Errorf("without field access ColumnNames() = %v, want none", cols)
	}

	e = mustParse[record](t, NewParser(nil, WithFieldAccess()))
	if got := e.ColumnNames(); !reflect.DeepEqual(got, []string{"record_id", "Name"}) {
		t.Fatalf("ColumnNames() = %v", got)
	}

	r := &record{}
	if err := e.SetValues(r, map[string]any{"record_id": "r-1", "Name": "first"}); err != nil {
		t.Fatalf("SetValues failed: %v", err)
	}
	if r.ID != "r-1" || r.Name != "first" {
		t.Errorf("record = %+v", r)
	}
}

func TestIdempotence(t *testing.T) {
	p := NewParser(nil)

	for _, typ := range []reflect.Type{
		reflect.TypeFor[user](),
		reflect.TypeFor[event](),
		reflect.TypeFor[reading](),
		reflect.TypeFor[timeline](),
	} {
		first, _ := p.Parse(typ)
		second, _ := p.Parse(typ)

		if first == second {
			t.Errorf("%v: Parse must build a new instance", typ)
		}
		if first.String() != second.String() || first.TableName() != second.TableName() {
			t.Errorf("%v: %s != %s", typ, first, second)
		}
		if !reflect.DeepEqual(columnNames(first.PartitionColumns()), columnNames(second.PartitionColumns())) ||
			!reflect.DeepEqual(columnNames(first.ClusteringColumns()), columnNames(second.ClusteringColumns())) {
			t.Errorf("%v: key structure differs", typ)
		}
	}
}

func TestRegistryOverride(t *testing.T) {
	reg := registry.New()
	p := NewParser(reg)

	before := mustParse[user](t, p)
	age, _ := before.Column("age")
	if age.ColumnType() != registry.Int {
		t.Fatalf("age = %s, want int", age.ColumnType())
	}

	registry.Override[int32](reg, registry.Varint)

	after := mustParse[user](t, p)
	age, _ = after.Column("age")
	if age.ColumnType() != registry.Varint {
		t.Errorf("age = %s, want varint", age.ColumnType())
	}

	// metadata derived earlier is not rewritten
	age, _ = before.Column("age")
	if age.ColumnType() != registry.Int {
		t.Errorf("earlier metadata changed to %s", age.ColumnType())
	}
}

func TestParseTag(t *testing.T) {
	type sample struct {
		A string `cql:"-"`
		B string `cql:"b_col"`
		C string `cql:",clustering,ordinal=2,order=DESC,static"`
		D string `cql:",partition,ordinal=x,bogus"`
		E string
	}
	st := reflect.TypeFor[sample]()

	a, _ := parseTag(st.Field(0))
	if !a.transient {
		t.Error("A should be transient")
	}

	b, _ := parseTag(st.Field(1))
	if b.column != "b_col" || b.role() != RoleNone {
		t.Errorf("B = %+v", b)
	}

	c, err := parseTag(st.Field(2))
	if err != nil || c.role() != RoleClustering || c.ordinal != 2 || !c.hasOrdinal || c.order != Descending || !c.static {
		t.Errorf("C = %+v, err %v", c, err)
	}

	d, err := parseTag(st.Field(3))
	if err == nil {
		t.Error("D should report ignored options")
	}
	if d.role() != RolePartition || d.hasOrdinal {
		t.Errorf("D = %+v", d)
	}

	e, err := parseTag(st.Field(4))
	if err != nil || e != (fieldTag{}) {
		t.Errorf("E = %+v, err %v", e, err)
	}
}

func TestFindAccessor(t *testing.T) {
	ut := reflect.TypeFor[user]()

	tests := []struct {
		field string
		found bool
	}{
		{"name", true},
		{"age", true},
		{"nickname", false},
		{"secret", true},
	}

	for _, tt := range tests {
		sf, _ := ut.FieldByName(tt.field)
		_, ok := findAccessor(ut, sf, false)
		if ok != tt.found {
			t.Errorf("findAccessor(%s) = %v, want %v", tt.field, ok, tt.found)
		}
	}

	sf, _ := ut.FieldByName("age")
	acc, _ := findAccessor(ut, sf, false)
	if ma := acc.(methodAccessor); ma.getter.Name != "GetAge" || ma.setter.Name != "SetAge" {
		t.Errorf("age accessor = %s", ma)
	}
}
