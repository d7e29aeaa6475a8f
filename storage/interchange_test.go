package storage

import (
	"encoding/json"
	"testing"
	"time"

	"campaignmanager/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	primary := NewMemoryBackend(0)
	s := New(primary, NewMemoryBackend(0))
	s.Init()
	s.Users.Create("alice", "pw")
	s.Campaigns.Create(models.NewCampaign{UserID: "u1", Name: "Banner", Data: bannerData("b")})
	s.Campaigns.Create(models.NewCampaign{UserID: "u1", Name: "Email", Data: emailData("e")})
	s.Campaigns.Create(models.NewCampaign{UserID: "u1", Name: "Landing", Data: landingData("l")})

	usersBefore, _, _ := primary.Get(KeyUsers)
	campaignsBefore, _, _ := primary.Get(KeyCampaigns)

	encoded, err := json.Marshal(s.ExportAll())
	require.NoError(t, err)
	require.True(t, s.ImportJSON(encoded))

	usersAfter, _, _ := primary.Get(KeyUsers)
	campaignsAfter, _, _ := primary.Get(KeyCampaigns)
	assert.Equal(t, string(usersBefore), string(usersAfter))
	assert.Equal(t, string(campaignsBefore), string(campaignsAfter))
}

func TestExportAll(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	s := newTestStore(t, WithClock(clock.Now))

	snap := s.ExportAll()
	assert.Equal(t, models.SnapshotVersion, snap.Version)
	assert.Equal(t, clock.Now().Format(time.RFC3339), snap.ExportDate)
	assert.Len(t, snap.Users, 1)
	assert.NotNil(t, snap.Campaigns)
	assert.Empty(t, snap.Campaigns)
}

func TestImportIntoFreshStore(t *testing.T) {
	t.Parallel()

	source := newTestStore(t)
	source.Campaigns.Create(models.NewCampaign{UserID: "u1", Name: "n", Data: bannerData("x")})
	encoded, err := json.Marshal(source.ExportAll())
	require.NoError(t, err)

	target := newTestStore(t, WithSeed("", ""))
	require.True(t, target.ImportJSON(encoded))
	assert.Equal(t, source.Users.List(), target.Users.List())
	assert.Len(t, target.Campaigns.List("u1"), 1)
}

func TestImportLeavesAbsentCollections(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Campaigns.Create(models.NewCampaign{UserID: "u1", Name: "n", Data: bannerData("x")})

	require.True(t, s.ImportJSON([]byte(`{"users":[{"id":"u9","username":"zed","password":"z"}]}`)))
	users := s.Users.List()
	require.Len(t, users, 1)
	assert.Equal(t, "zed", users[0].Username)
	assert.Len(t, s.Campaigns.List(""), 1, "campaigns were not in the document")
}

func TestImportEmptyCollections(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Campaigns.Create(models.NewCampaign{UserID: "u1", Name: "n", Data: bannerData("x")})

	require.True(t, s.ImportJSON([]byte(`{"users":[],"campaigns":[]}`)))
	assert.Empty(t, s.Users.List())
	assert.Empty(t, s.Campaigns.List(""))
}

func TestImportRejectsMalformedDocument(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	before := s.Users.List()

	assert.False(t, s.ImportJSON([]byte(`{"users": "not a list"`)))
	assert.False(t, s.ImportJSON([]byte(`{"campaigns":[{"id":"c1","type":"video"}]}`)))
	assert.Equal(t, before, s.Users.List())
}

func TestImportAllRefusesUnknownCampaignType(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	keep := s.Campaigns.Create(models.NewCampaign{UserID: "u1", Name: "keep", Data: bannerData("k")})
	require.NotNil(t, keep)
	users := s.Users.List()

	snap := models.Snapshot{
		Users: []models.User{{ID: "u9", Username: "zed", Password: "z"}},
		Campaigns: []models.Campaign{
			{ID: "c1", UserID: "u9", Name: "fine", Type: models.TypeEmail, Status: models.StatusDraft, Data: emailData("e")},
			{ID: "c2", UserID: "u9", Name: "untyped", Status: models.StatusDraft},
		},
	}
	assert.False(t, s.ImportAll(snap))

	assert.Equal(t, users, s.Users.List(), "users are untouched")
	list := s.Campaigns.List("")
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
}

func TestImportQuotaFailure(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, WithQuota(400))
	users := make([]models.User, 20)
	for i := range users {
		users[i] = models.User{ID: "id", Username: "someone", Password: "password"}
	}
	assert.False(t, s.ImportAll(models.Snapshot{Users: users}))
	assert.Len(t, s.Users.List(), 1, "the demo user survives a rejected import")
}

func TestCheckIntegrityOrphans(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	demo := s.Users.FindByUsername(DemoUsername)
	s.Campaigns.Create(models.NewCampaign{UserID: demo.ID, Name: "mine", Data: bannerData("x")})
	s.Campaigns.Create(models.NewCampaign{UserID: "ghost", Name: "orphan 1", Data: bannerData("x")})
	s.Campaigns.Create(models.NewCampaign{UserID: "ghost", Name: "orphan 2", Data: emailData("x")})
	s.Campaigns.Create(models.NewCampaign{Name: "unowned", Data: bannerData("x")})

	report := s.CheckIntegrity()
	assert.False(t, report.IsValid)
	assert.Equal(t, 2, report.Orphaned, "campaigns without an owner id are not orphans")
	assert.Equal(t, []string{"Found 2 orphaned campaigns"}, report.Issues)

	// Reporting never repairs
	assert.Len(t, s.Campaigns.List(""), 4)
}

func TestCheckIntegrityCorruption(t *testing.T) {
	t.Parallel()

	primary := NewMemoryBackend(0)
	s := New(primary, NewMemoryBackend(0))
	s.Init()

	require.NoError(t, primary.Set(KeyUsers, []byte(`{"not":"a list"}`)))
	require.NoError(t, primary.Set(KeyCampaigns, []byte(`[{"id":"c1","type":"video","data":{}}]`)))

	report := s.CheckIntegrity()
	assert.False(t, report.IsValid)
	assert.Equal(t, []string{"Users data is corrupted", "Campaigns data is corrupted"}, report.Issues)
	assert.Zero(t, report.Orphaned)

	// Reads fall back to empty collections
	assert.Empty(t, s.Users.List())
	assert.Empty(t, s.Campaigns.List(""))
}

func TestCheckIntegrityHealthy(t *testing.T) {
	t.Parallel()

	report := newTestStore(t).CheckIntegrity()
	assert.True(t, report.IsValid)
	assert.Empty(t, report.Issues)
	assert.NotNil(t, report.Issues)
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	alice := s.Users.Create("alice", "pw")
	s.Sessions.SetCurrent(*alice)
	s.Campaigns.Create(models.NewCampaign{UserID: alice.ID, Name: "n", Data: bannerData("x")})

	s.ClearAll()

	assert.Nil(t, s.Sessions.GetCurrent())
	assert.Empty(t, s.Campaigns.List(""))
	users := s.Users.List()
	require.Len(t, users, 1, "only the reseeded demo user remains")
	assert.Equal(t, DemoUsername, users[0].Username)
}

func TestInfo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, WithQuota(1024*1024))

	info := s.Info()
	require.NotNil(t, info)
	assert.Equal(t, int64(1024*1024), info.Total)
	assert.Positive(t, info.Used)

	used, err := s.kv.Usage()
	require.NoError(t, err)
	assert.Equal(t, used, info.Used)
	assert.Equal(t, "1.0 MiB", info.HumanReadable.Total)
	assert.Equal(t, 0, info.Percentage)
}

func TestInfoPercentage(t *testing.T) {
	t.Parallel()

	backend := NewMemoryBackend(0)
	require.NoError(t, backend.Set("abcd", make([]byte, 246))) // 250 bytes
	s := New(backend, NewMemoryBackend(0), WithQuota(1000))

	info := s.Info()
	require.NotNil(t, info)
	assert.Equal(t, int64(250), info.Used)
	assert.Equal(t, 25, info.Percentage)
	assert.Equal(t, "250 B", info.HumanReadable.Used)
}

func TestInfoUnavailable(t *testing.T) {
	t.Parallel()

	s := New(brokenBackend{}, NewMemoryBackend(0))
	assert.Nil(t, s.Info())
}
