package models

// SnapshotVersion is written into every export document
const SnapshotVersion = "1.0"

// Snapshot is the export document. On import a nil collection means the
// field was absent and that collection is left alone.
type Snapshot struct {
	Users      []User     `json:"users"`
	Campaigns  []Campaign `json:"campaigns"`
	ExportDate string     `json:"exportDate"`
	Version    string     `json:"version"`
}

// IntegrityReport is the result of a consistency check
type IntegrityReport struct {
	IsValid  bool     `json:"isValid"`
	Issues   []string `json:"issues"`
	Orphaned int      `json:"orphaned"`
}

// StorageInfo describes how much of the storage quota is in use
type StorageInfo struct {
	Used          int64        `json:"used"`
	Total         int64        `json:"total"`
	Percentage    int          `json:"percentage"`
	HumanReadable HumanStorage `json:"humanReadable"`
}

// HumanStorage holds formatted byte counts
type HumanStorage struct {
	Used  string `json:"used"`
	Total string `json:"total"`
}
