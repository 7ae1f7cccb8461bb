/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"time"

	"github.com/google/uuid"
	"github.com/suparena/entitymeta/registry"
)

// RecordStatus is the lifecycle state of a rating record
type RecordStatus int

const (
	RecordPending RecordStatus = iota
	RecordConfirmed
	RecordVoided
)

var recordStatusNames = map[RecordStatus]string{
	RecordPending:   "PENDING",
	RecordConfirmed: "CONFIRMED",
	RecordVoided:    "VOIDED",
}

// Register maps the model enums onto reg
func Register(reg *registry.TypeRegistry) {
	registry.RegisterEnum(reg, recordStatusNames)
}

// RatingRecordKey addresses one rating change of a player within a rating system.
type RatingRecordKey struct {
	PlayerID   string    `cql:"player_id,partition"`
	SystemID   string    `cql:"system_id,partition"`
	RecordedAt time.Time `cql:"recorded_at,clustering,order=desc"`
	RecordID   uuid.UUID `cql:"record_id,clustering,auto"`
}

func (k *RatingRecordKey) GetPlayerID() string { return k.PlayerID }
func (k *RatingRecordKey) SetPlayerID(id string) { k.PlayerID = id }
func (k *RatingRecordKey) GetSystemID() string { return k.SystemID }
func (k *RatingRecordKey) SetSystemID(id string) { k.SystemID = id }
func (k *RatingRecordKey) GetRecordedAt() time.Time { return k.RecordedAt }
func (k *RatingRecordKey) SetRecordedAt(t time.Time) { k.RecordedAt = t }
func (k *RatingRecordKey) GetRecordID() uuid.UUID { return k.RecordID }
func (k *RatingRecordKey) SetRecordID(id uuid.UUID) { k.RecordID = id }

// RatingRecord is one rating change, keyed by an embedded key.
type RatingRecord struct {
	Key       RatingRecordKey    `cql:",embedded"`
	Rating    float64            `cql:"rating"`
	Deviation float32            `cql:"deviation"`
	Games     int32              `cql:"games"`
	Status    RecordStatus       `cql:"status"`
	Opponents []string           `cql:"opponents"`
	Breakdown map[string]float64 `cql:"breakdown"`
	Notes     string             `cql:"notes,static"`
}

func (r *RatingRecord) TableName() string { return "rating_records" }

func (r *RatingRecord) GetKey() RatingRecordKey { return r.Key }
func (r *RatingRecord) SetKey(k RatingRecordKey) { r.Key = k }
func (r *RatingRecord) GetRating() float64 { return r.Rating }
func (r *RatingRecord) SetRating(v float64) { r.Rating = v }
func (r *RatingRecord) GetDeviation() float32 { return r.Deviation }
func (r *RatingRecord) SetDeviation(v float32) { r.Deviation = v }
func (r *RatingRecord) GetGames() int32 { return r.Games }
func (r *RatingRecord) SetGames(n int32) { r.Games = n }
func (r *RatingRecord) GetStatus() RecordStatus { return r.Status }
func (r *RatingRecord) SetStatus(s RecordStatus) { r.Status = s }
func (r *RatingRecord) GetOpponents() []string { return r.Opponents }
func (r *RatingRecord) SetOpponents(o []string) { r.Opponents = o }
func (r *RatingRecord) GetBreakdown() map[string]float64 { return r.Breakdown }
func (r *RatingRecord) SetBreakdown(b map[string]float64) { r.Breakdown = b }
func (r *RatingRecord) GetNotes() string { return r.Notes }
func (r *RatingRecord) SetNotes(n string) { r.Notes = n }
