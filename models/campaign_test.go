package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignJSONVariants(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		data CampaignData
	}{
		{name: "banner", data: DefaultData(TypeBanner)},
		{name: "email", data: DefaultData(TypeEmail)},
		{name: "landing", data: DefaultData(TypeLanding)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := Campaign{
				ID:        "c1",
				UserID:    "u1",
				Name:      tt.name,
				Type:      tt.data.CampaignType(),
				Status:    StatusDraft,
				Data:      tt.data,
				CreatedAt: created,
				UpdatedAt: created,
			}
			encoded, err := json.Marshal(in)
			require.NoError(t, err)

			var out Campaign
			require.NoError(t, json.Unmarshal(encoded, &out))
			assert.Equal(t, in.Data, out.Data)
			assert.Equal(t, in.Type, out.Type)
			assert.IsType(t, tt.data, out.Data)
		})
	}
}

func TestCampaignJSONFieldNames(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"id": "c1",
		"userId": "u1",
		"name": "Promo",
		"type": "email",
		"status": "published",
		"data": {"template": "promotional", "subject": "Sale", "ctaText": "Shop", "ctaUrl": "https://shop.example"},
		"createdAt": "2026-01-05T10:00:00Z",
		"updatedAt": "2026-01-06T10:00:00Z"
	}`)

	var c Campaign
	require.NoError(t, json.Unmarshal(raw, &c))
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, StatusPublished, c.Status)

	email, ok := c.Data.(*EmailData)
	require.True(t, ok)
	assert.Equal(t, EmailPromotional, email.Template)
	assert.Equal(t, "Sale", email.Subject)
	assert.Equal(t, "Shop", email.CTAText)
	assert.Equal(t, "https://shop.example", email.CTAURL)
	assert.True(t, c.UpdatedAt.After(c.CreatedAt))
}

func TestCampaignJSONUnknownType(t *testing.T) {
	t.Parallel()

	var c Campaign
	err := json.Unmarshal([]byte(`{"id":"c1","type":"video","data":{}}`), &c)
	assert.Error(t, err)
}

func TestCampaignJSONWithoutData(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(Campaign{ID: "c1", Type: TypeBanner})
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), `"data"`)

	var c Campaign
	require.NoError(t, json.Unmarshal(encoded, &c))
	assert.Nil(t, c.Data)
}

func TestDecodeCampaignData(t *testing.T) {
	t.Parallel()

	data, err := DecodeCampaignData(TypeBanner, json.RawMessage(`{"size":"300x600","fontSize":32}`))
	require.NoError(t, err)
	banner := data.(*BannerData)
	assert.Equal(t, BannerSkyscraper, banner.Size)
	assert.Equal(t, 32, banner.FontSize)

	data, err = DecodeCampaignData(TypeLanding, nil)
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = DecodeCampaignData(TypeLanding, json.RawMessage("null"))
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = DecodeCampaignData(TypeEmail, json.RawMessage(`{"subject": 5}`))
	assert.Error(t, err)

	_, err = DecodeCampaignData("video", json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestCloneData(t *testing.T) {
	t.Parallel()

	original := &LandingData{PageTitle: "Before", EnableForm: true}
	clone := CloneData(original).(*LandingData)
	clone.PageTitle = "After"
	assert.Equal(t, "Before", original.PageTitle)
	assert.True(t, clone.EnableForm)

	assert.Nil(t, CloneData(nil))
	assert.Nil(t, CloneData((*BannerData)(nil)))
}

func TestDefaultData(t *testing.T) {
	t.Parallel()

	for _, typ := range []CampaignType{TypeBanner, TypeEmail, TypeLanding} {
		data := DefaultData(typ)
		require.NotNil(t, data, typ)
		assert.Equal(t, typ, data.CampaignType())
	}
	assert.Nil(t, DefaultData("video"))
}

func TestEnumValid(t *testing.T) {
	t.Parallel()

	assert.True(t, TypeBanner.Valid())
	assert.True(t, TypeLanding.Valid())
	assert.False(t, CampaignType("").Valid())
	assert.False(t, CampaignType("Banner").Valid())

	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusPublished.Valid())
	assert.False(t, CampaignStatus("archived").Valid())
}

func TestUserPublicOmitsPassword(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(User{ID: "u1", Username: "alice", Password: "secret"}.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "secret")
	assert.Contains(t, string(encoded), `"username":"alice"`)
}
