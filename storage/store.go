package storage

import (
	"errors"
	"time"
)

// Store is the persistence core: a user directory, a session register and a
// campaign repository sharing one primary medium, plus a secondary medium
// holding the tab-scoped copy of the session.
//
// Reads always go to the medium; nothing is cached in memory.
type Store struct {
	Users     *UserDirectory
	Sessions  *SessionRegister
	Campaigns *CampaignRepository

	kv        *KV
	secondary *KV
	backends  []Backend
	now       func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithQuota sets the byte quota enforced on the primary medium
func WithQuota(quota int64) Option {
	return func(s *Store) {
		s.kv.quota = quota
	}
}

// WithClock replaces time.Now for every component
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
		s.Users.now = now
		s.Campaigns.now = now
	}
}

// WithSeed overrides the demo account created on Init
func WithSeed(username, password string) Option {
	return func(s *Store) {
		s.Users.SetSeed(username, password)
	}
}

// New builds a Store on primary with secondary as the tab-scoped session
// replica. Call Init to seed defaults.
func New(primary, secondary Backend, opts ...Option) *Store {
	kv := NewKV("primary", primary, DefaultQuota)
	tab := NewKV("secondary", secondary, 0)

	s := &Store{
		Users:     NewUserDirectory(kv),
		Sessions:  NewSessionRegister(kv, tab),
		Campaigns: NewCampaignRepository(kv),
		kv:        kv,
		secondary: tab,
		backends:  []Backend{primary},
		now:       time.Now,
	}
	if secondary != primary {
		s.backends = append(s.backends, secondary)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init seeds the demo user and an empty campaign list when missing
func (s *Store) Init() {
	s.Users.Initialize()
	s.Campaigns.Initialize()
}

// Close closes both media
func (s *Store) Close() error {
	var errs []error
	for _, b := range s.backends {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
