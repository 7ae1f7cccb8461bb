/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"github.com/go-openapi/strfmt"
	"github.com/suparena/entitymeta/metadata"
)

type RatingSystem struct {

	// Timestamp when the rating system was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt" cql:"created_at,auto"`

	// A description of the rating system.
	// Required: true
	Description *string `json:"Description" cql:"description"`

	// Unique identifier for the rating system.
	// Required: true
	ID *string `json:"Id" cql:"id,id"`

	// Name of the rating system.
	// Required: true
	Name *string `json:"Name" cql:"name"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty" cql:"site_url"`

	// Timestamp when the rating system was last updated.
	// Required: true
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt" cql:"updated_at"`

	// Scratch space for the UI, never stored.
	Draft string `json:"-" cql:"-"`
}

func (r *RatingSystem) TableName() string { return "rating_systems" }

func (r *RatingSystem) Indexes() []metadata.Index {
	return []metadata.Index{
		{Name: "rating_systems_by_name", Columns: []string{"name"}},
	}
}

func (r *RatingSystem) GetCreatedAt() *strfmt.DateTime { return r.CreatedAt }
func (r *RatingSystem) SetCreatedAt(t *strfmt.DateTime) { r.CreatedAt = t }
func (r *RatingSystem) GetDescription() *string { return r.Description }
func (r *RatingSystem) SetDescription(d *string) { r.Description = d }
func (r *RatingSystem) GetID() *string { return r.ID }
func (r *RatingSystem) SetID(id *string) { r.ID = id }
func (r *RatingSystem) GetName() *string { return r.Name }
func (r *RatingSystem) SetName(name *string) { r.Name = name }
func (r *RatingSystem) GetSiteURL() string { return r.SiteURL }
func (r *RatingSystem) SetSiteURL(u string) { r.SiteURL = u }
func (r *RatingSystem) GetUpdatedAt() *strfmt.DateTime { return r.UpdatedAt }
func (r *RatingSystem) SetUpdatedAt(t *strfmt.DateTime) { r.UpdatedAt = t }
func (r *RatingSystem) GetDraft() string { return r.Draft }
func (r *RatingSystem) SetDraft(d string) { r.Draft = d }
