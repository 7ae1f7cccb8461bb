/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"time"

	"github.com/google/uuid"
)

// user has a flat single-column key and one field of every exclusion kind.
type user struct {
	id        uuid.UUID `cql:"user_id,id,auto"`
	name      string
	age       int32
	tags      []string
	scores    map[string]float64
	roles     map[string]struct{}
	attrs     map[string]any
	createdAt time.Time `cql:"created_at,auto"`
	secret    string    `cql:"-"`
	nickname  string
	inbox     chan string
}

func (u *user) TableName() string { return "users" }

func (u *user) Indexes() []Index {
	return []Index{{Name: "users_by_name", Columns: []string{"name"}}}
}

func (u *user) ID() uuid.UUID { return u.id }
func (u *user) SetID(id uuid.UUID) { u.id = id }
func (u *user) Name() string { return u.name }
func (u *user) SetName(name string) { u.name = name }
func (u *user) GetAge() int32 { return u.age }
func (u *user) SetAge(age int32) { u.age = age }
func (u *user) Tags() []string { return u.tags }
func (u *user) SetTags(tags []string) { u.tags = tags }
func (u *user) Scores() map[string]float64 { return u.scores }
func (u *user) SetScores(s map[string]float64) { u.scores = s }
func (u *user) Roles() map[string]struct{} { return u.roles }
func (u *user) SetRoles(r map[string]struct{}) { u.roles = r }
func (u *user) Attrs() map[string]any { return u.attrs }
func (u *user) SetAttrs(a map[string]any) { u.attrs = a }
func (u *user) CreatedAt() time.Time { return u.createdAt }
func (u *user) SetCreatedAt(t time.Time) { u.createdAt = t }
func (u *user) Secret() string { return u.secret }
func (u *user) SetSecret(s string) { u.secret = s }
func (u *user) Nickname() string { return u.nickname }
func (u *user) Inbox() chan string { return u.inbox }
func (u *user) SetInbox(c chan string) { u.inbox = c }

// event is keyed by an embedded two-column partition key.
type eventKey struct {
	source string `cql:",ordinal=1"`
	day    string `cql:",ordinal=0"`
}

func (k *eventKey) Source() string { return k.source }
func (k *eventKey) SetSource(s string) { k.source = s }
func (k *eventKey) Day() string { return k.day }
func (k *eventKey) SetDay(d string) { k.day = d }

type event struct {
	key     eventKey `cql:",id"`
	payload string
}

func (e *event) Key() eventKey { return e.key }
func (e *event) SetKey(k eventKey) { e.key = k }
func (e *event) Payload() string { return e.payload }
func (e *event) SetPayload(p string) { e.payload = p }

// reading nests a partition key inside its embedded key.
type bucketKey struct {
	tenant string
	region string
}

func (k *bucketKey) Tenant() string { return k.tenant }
func (k *bucketKey) SetTenant(t string) { k.tenant = t }
func (k *bucketKey) Region() string { return k.region }
func (k *bucketKey) SetRegion(r string) { k.region = r }

type readingKey struct {
	bucket *bucketKey `cql:",embedded"`
	at     time.Time  `cql:",order=desc"`
	seq    int32
}

func (k *readingKey) Bucket() *bucketKey { return k.bucket }
func (k *readingKey) SetBucket(b *bucketKey) { k.bucket = b }
func (k *readingKey) At() time.Time { return k.at }
func (k *readingKey) SetAt(t time.Time) { k.at = t }
func (k *readingKey) Seq() int32 { return k.seq }
func (k *readingKey) SetSeq(s int32) { k.seq = s }

type reading struct {
	key   *readingKey `cql:",embedded"`
	value float64
}

func (r *reading) Key() *readingKey { return r.key }
func (r *reading) SetKey(k *readingKey) { r.key = k }
func (r *reading) Value() float64 { return r.value }
func (r *reading) SetValue(v float64) { r.value = v }

// conflicted declares both an embedded key and a flat key column.
type conflicted struct {
	key  eventKey `cql:",embedded"`
	flat string   `cql:",partition"`
	note string
}

func (c *conflicted) Key() eventKey { return c.key }
func (c *conflicted) SetKey(k eventKey) { c.key = k }
func (c *conflicted) Flat() string { return c.flat }
func (c *conflicted) SetFlat(f string) { c.flat = f }
func (c *conflicted) Note() string { return c.note }
func (c *conflicted) SetNote(n string) { c.note = n }

// timeline has a flat composite key with explicit ordinals.
type timeline struct {
	body   string    `cql:",static"`
	ts     time.Time `cql:",clustering,order=desc,ordinal=1"`
	owner  string    `cql:",partition"`
	seq    int64     `cql:",clustering,ordinal=0"`
	bucket int32     `cql:",partition"`
}

func (t *timeline) Body() string { return t.body }
func (t *timeline) SetBody(b string) { t.body = b }
func (t *timeline) Ts() time.Time { return t.ts }
func (t *timeline) SetTs(ts time.Time) { t.ts = ts }
func (t *timeline) Owner() string { return t.owner }
func (t *timeline) SetOwner(o string) { t.owner = o }
func (t *timeline) Seq() int64 { return t.seq }
func (t *timeline) SetSeq(s int64) { t.seq = s }
func (t *timeline) Bucket() int32 { return t.bucket }
func (t *timeline) SetBucket(b int32) { t.bucket = b }

// record only exposes exported fields.
type record struct {
	ID     string `cql:"record_id,id"`
	Name   string
	Hidden bool `cql:"-"`
	notes  string
}

type status int

const (
	statusActive status = iota
	statusRetired
)

type account struct {
	id     string `cql:",id"`
	state  status
	broken string
}

func (a *account) ID() string { return a.id }
func (a *account) SetID(id string) { a.id = id }
func (a *account) State() status { return a.state }
func (a *account) SetState(s status) { a.state = s }
func (a *account) Broken() string { panic("broken getter") }
func (a *account) SetBroken(b string) { a.broken = b }

type base struct {
	created time.Time
}

func (b *base) Created() time.Time { return b.created }
func (b *base) SetCreated(t time.Time) { b.created = t }

// derived embeds base anonymously; promoted fields are not columns.
type derived struct {
	base
	label string
}

func (d *derived) Label() string { return d.label }
func (d *derived) SetLabel(l string) { d.label = l }
