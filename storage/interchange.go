package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"campaignmanager/models"

	"github.com/dustin/go-humanize"
)

// ExportAll snapshots both collections
func (s *Store) ExportAll() models.Snapshot {
	return models.Snapshot{
		Users:      s.Users.List(),
		Campaigns:  s.Campaigns.List(""),
		ExportDate: s.now().UTC().Format(time.RFC3339),
		Version:    models.SnapshotVersion,
	}
}

// ImportAll replaces each collection present in snap. Nothing is merged; a
// campaign without a known type rejects the whole import before anything is
// written. The result is false if any write failed.
func (s *Store) ImportAll(snap models.Snapshot) bool {
	for _, c := range snap.Campaigns {
		if !c.Type.Valid() {
			s.kv.log.Error("Failed to import data: campaign %s has unknown type %q", c.ID, c.Type)
			return false
		}
	}

	ok := true
	if snap.Users != nil {
		ok = s.Users.save(snap.Users) && ok
	}
	if snap.Campaigns != nil {
		ok = s.Campaigns.save(snap.Campaigns) && ok
	}
	return ok
}

// ImportJSON decodes an export document and imports it
func (s *Store) ImportJSON(data []byte) bool {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.kv.log.Error("Failed to import data: %v", err)
		return false
	}
	return s.ImportAll(snap)
}

// CheckIntegrity reports corrupted collections and campaigns owned by a user
// id that does not exist. It never repairs anything.
func (s *Store) CheckIntegrity() models.IntegrityReport {
	report := models.IntegrityReport{Issues: []string{}}

	if !s.wellFormed(KeyUsers, &[]models.User{}) {
		report.Issues = append(report.Issues, "Users data is corrupted")
	}
	if !s.wellFormed(KeyCampaigns, &[]models.Campaign{}) {
		report.Issues = append(report.Issues, "Campaigns data is corrupted")
	}

	userIDs := make(map[string]struct{})
	for _, u := range s.Users.List() {
		userIDs[u.ID] = struct{}{}
	}
	for _, c := range s.Campaigns.List("") {
		if c.UserID == "" {
			continue
		}
		if _, ok := userIDs[c.UserID]; !ok {
			report.Orphaned++
		}
	}
	if report.Orphaned > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("Found %d orphaned campaigns", report.Orphaned))
	}

	report.IsValid = len(report.Issues) == 0
	return report
}

// ClearAll removes every collection and the session, then restores the
// defaults (demo user, empty campaign list)
func (s *Store) ClearAll() {
	s.kv.Remove(KeyUsers)
	s.Sessions.ClearCurrent()
	s.kv.Remove(KeyCampaigns)
	s.Init()
}

// Info reports quota usage across the primary medium, or nil when it cannot
// be measured
func (s *Store) Info() *models.StorageInfo {
	used, err := s.kv.Usage()
	if err != nil {
		s.kv.log.Error("Failed to get storage info: %v", err)
		return nil
	}

	total := s.kv.Quota()
	info := &models.StorageInfo{
		Used:  used,
		Total: total,
		HumanReadable: models.HumanStorage{
			Used: humanize.IBytes(uint64(used)),
		},
	}
	if total > 0 {
		info.Percentage = int((used*100 + total/2) / total)
		info.HumanReadable.Total = humanize.IBytes(uint64(total))
	}
	return info
}

// wellFormed reports whether key is absent or decodes as the collection
// type dst points to. An absent key reads as an empty collection.
func (s *Store) wellFormed(key string, dst interface{}) bool {
	data, found := s.kv.Raw(key)
	if !found {
		return true
	}
	return json.Unmarshal(data, dst) == nil
}
