package storage

import (
	"sort"
	"strings"
	"time"

	"campaignmanager/models"
)

// CopySuffix is appended to the name of a duplicated campaign
const CopySuffix = " (Copy)"

// CampaignRepository owns the campaigns collection. Every mutation reads and
// rewrites the whole collection; there is no locking across processes, so
// concurrent writers are last-writer-wins.
type CampaignRepository struct {
	kv  *KV
	now func() time.Time
}

// NewCampaignRepository creates a repository on kv
func NewCampaignRepository(kv *KV) *CampaignRepository {
	return &CampaignRepository{kv: kv, now: time.Now}
}

// Initialize writes an empty collection when none exists yet
func (r *CampaignRepository) Initialize() {
	if len(r.all()) == 0 {
		r.save([]models.Campaign{})
	}
}

// List returns all campaigns, or only ownerID's when it is non-empty, in
// insertion order
func (r *CampaignRepository) List(ownerID string) []models.Campaign {
	campaigns := r.all()
	if ownerID == "" {
		return campaigns
	}

	owned := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.UserID == ownerID {
			owned = append(owned, c)
		}
	}
	return owned
}

// Create assigns an id and timestamps, appends the campaign and persists the
// collection. An empty status defaults to draft; a data bag decides the type.
// A campaign without a known type is refused with nil and nothing is written.
// Otherwise the returned record is what was attempted; persistence failures
// are only logged.
func (r *CampaignRepository) Create(in models.NewCampaign) *models.Campaign {
	now := r.now().UTC()
	campaign := models.Campaign{
		ID:        newID(),
		UserID:    in.UserID,
		Name:      in.Name,
		Type:      in.Type,
		Status:    in.Status,
		Data:      models.CloneData(in.Data),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if campaign.Data != nil {
		campaign.Type = campaign.Data.CampaignType()
	}
	if !campaign.Type.Valid() {
		r.kv.log.Error("Failed to create campaign %q: unknown type %q", campaign.Name, campaign.Type)
		return nil
	}
	if campaign.Status == "" {
		campaign.Status = models.StatusDraft
	}

	campaigns := append(r.all(), campaign)
	r.save(campaigns)
	return &campaign
}

// Update merges upd over the campaign with id and persists it. Data replaces
// the whole bag. Returns nil when no campaign has that id. The returned record
// is the merged one even if the write failed; callers confirm with GetByID.
func (r *CampaignRepository) Update(id string, upd models.CampaignUpdate) *models.Campaign {
	campaigns := r.all()
	index := indexOf(campaigns, id)
	if index == -1 {
		return nil
	}

	c := campaigns[index]
	if upd.UserID != nil {
		c.UserID = *upd.UserID
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	if upd.Data != nil {
		c.Data = models.CloneData(upd.Data)
		c.Type = upd.Data.CampaignType()
	}
	c.UpdatedAt = r.advance(c.UpdatedAt)

	campaigns[index] = c
	r.save(campaigns)
	return &c
}

// Delete removes the campaign with id and reports whether one was removed
func (r *CampaignRepository) Delete(id string) bool {
	campaigns := r.all()
	kept := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	r.save(kept)
	return len(kept) < len(campaigns)
}

// GetByID returns the campaign with id, or nil
func (r *CampaignRepository) GetByID(id string) *models.Campaign {
	campaigns := r.all()
	if index := indexOf(campaigns, id); index != -1 {
		return &campaigns[index]
	}
	return nil
}

// Duplicate appends a copy of the campaign with id under a new id, with
// " (Copy)" appended to the name, status draft and fresh timestamps
func (r *CampaignRepository) Duplicate(id string) *models.Campaign {
	campaigns := r.all()
	index := indexOf(campaigns, id)
	if index == -1 {
		return nil
	}

	now := r.now().UTC()
	dup := campaigns[index]
	dup.ID = newID()
	dup.Name = dup.Name + CopySuffix
	dup.Status = models.StatusDraft
	dup.Data = models.CloneData(dup.Data)
	dup.CreatedAt = now
	dup.UpdatedAt = now

	campaigns = append(campaigns, dup)
	r.save(campaigns)
	return &dup
}

// Stats counts ownerID's campaigns by type and status
func (r *CampaignRepository) Stats(ownerID string) models.CampaignStats {
	var stats models.CampaignStats
	for _, c := range r.List(ownerID) {
		stats.Total++
		switch c.Type {
		case models.TypeBanner:
			stats.Banners++
		case models.TypeEmail:
			stats.Emails++
		case models.TypeLanding:
			stats.Landing++
		}
		switch c.Status {
		case models.StatusDraft:
			stats.Drafts++
		case models.StatusPublished:
			stats.Published++
		}
	}
	return stats
}

// Search filters ownerID's campaigns by exact type, exact status and a
// case-insensitive name substring, newest update first. Equal timestamps
// are ordered by id ascending.
func (r *CampaignRepository) Search(ownerID string, filter models.SearchFilter) []models.Campaign {
	term := strings.ToLower(filter.NameContains)

	var results []models.Campaign
	for _, c := range r.List(ownerID) {
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(c.Name), term) {
			continue
		}
		results = append(results, c)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].UpdatedAt.Equal(results[j].UpdatedAt) {
			return results[i].UpdatedAt.After(results[j].UpdatedAt)
		}
		return results[i].ID < results[j].ID
	})
	if results == nil {
		results = []models.Campaign{}
	}
	return results
}

func (r *CampaignRepository) all() []models.Campaign {
	campaigns := []models.Campaign{}
	r.kv.Get(KeyCampaigns, &campaigns)
	return campaigns
}

func (r *CampaignRepository) save(campaigns []models.Campaign) bool {
	return r.kv.Put(KeyCampaigns, campaigns)
}

// advance returns the current time, nudged past prev when the clock has not
// moved since the last write
func (r *CampaignRepository) advance(prev time.Time) time.Time {
	now := r.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond).UTC()
	}
	return now
}

func indexOf(campaigns []models.Campaign, id string) int {
	for i, c := range campaigns {
		if c.ID == id {
			return i
		}
	}
	return -1
}
