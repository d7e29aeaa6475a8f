package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// CampaignType discriminates the content of a campaign
type CampaignType string

const (
	TypeBanner  CampaignType = "banner"
	TypeEmail   CampaignType = "email"
	TypeLanding CampaignType = "landing"
)

// Valid reports whether t is a known campaign type
func (t CampaignType) Valid() bool {
	switch t {
	case TypeBanner, TypeEmail, TypeLanding:
		return true
	}
	return false
}

// CampaignStatus is the publication state of a campaign
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusPublished CampaignStatus = "published"
)

// Valid reports whether s is a known status
func (s CampaignStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Campaign is a banner, email or landing page owned by a user.
//
// UserID is a weak reference: nothing enforces that the user exists.
type Campaign struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Name      string         `json:"name"`
	Type      CampaignType   `json:"type"`
	Status    CampaignStatus `json:"status"`
	Data      CampaignData   `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// campaignJSON is the wire layout of Campaign with the data bag left raw
type campaignJSON struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Type      CampaignType    `json:"type"`
	Status    CampaignStatus  `json:"status"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// MarshalJSON writes the data bag in the shape selected by Type
func (c Campaign) MarshalJSON() ([]byte, error) {
	wire := campaignJSON{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      c.Type,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Data != nil {
		data, err := json.Marshal(c.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s data: %w", c.Type, err)
		}
		wire.Data = data
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the data bag into the variant named by the type field
func (c *Campaign) UnmarshalJSON(b []byte) error {
	var wire campaignJSON
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	data, err := DecodeCampaignData(wire.Type, wire.Data)
	if err != nil {
		return err
	}

	*c = Campaign{
		ID:        wire.ID,
		UserID:    wire.UserID,
		Name:      wire.Name,
		Type:      wire.Type,
		Status:    wire.Status,
		Data:      data,
		CreatedAt: wire.CreatedAt,
		UpdatedAt: wire.UpdatedAt,
	}
	return nil
}

// NewCampaign holds the caller-supplied fields of a campaign being created
type NewCampaign struct {
	UserID string         `json:"userId"`
	Name   string         `json:"name"`
	Type   CampaignType   `json:"type"`
	Status CampaignStatus `json:"status"`
	Data   CampaignData   `json:"data"`
}

// CampaignUpdate is a partial update. Nil fields are left untouched; a
// non-nil Data replaces the whole data bag and, with it, the campaign type.
type CampaignUpdate struct {
	UserID *string
	Name   *string
	Status *CampaignStatus
	Data   CampaignData
}

// CampaignStats counts one owner's campaigns by type and status
type CampaignStats struct {
	Total     int `json:"total"`
	Banners   int `json:"banners"`
	Emails    int `json:"emails"`
	Landing   int `json:"landing"`
	Drafts    int `json:"drafts"`
	Published int `json:"published"`
}

// SearchFilter narrows a campaign search. Empty fields match everything.
type SearchFilter struct {
	Type         CampaignType
	Status       CampaignStatus
	NameContains string
}
