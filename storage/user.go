package storage

import (
	"time"

	"campaignmanager/models"

	"github.com/google/uuid"
)

// Storage keys shared by every component
const (
	KeyUsers       = "campaignManager_users"
	KeyCurrentUser = "campaignManager_currentUser"
	KeyCampaigns   = "campaignManager_campaigns"
)

// Demo account seeded into an empty directory
const (
	DemoUsername = "demo"
	DemoPassword = "demo123"
)

// UserDirectory owns the users collection
type UserDirectory struct {
	kv           *KV
	now          func() time.Time
	seedUsername string
	seedPassword string
}

// NewUserDirectory creates a directory seeding the default demo account
func NewUserDirectory(kv *KV) *UserDirectory {
	return &UserDirectory{
		kv:           kv,
		now:          time.Now,
		seedUsername: DemoUsername,
		seedPassword: DemoPassword,
	}
}

// SetSeed changes the account created by Initialize. An empty username
// disables seeding.
func (d *UserDirectory) SetSeed(username, password string) {
	d.seedUsername = username
	d.seedPassword = password
}

// Initialize seeds the demo account when the collection is empty. Running it
// again is a no-op.
func (d *UserDirectory) Initialize() {
	if d.seedUsername == "" || len(d.List()) > 0 {
		return
	}

	demo := models.User{
		ID:        newID(),
		Username:  d.seedUsername,
		Password:  d.seedPassword,
		CreatedAt: d.now().UTC(),
	}
	if d.save([]models.User{demo}) {
		d.kv.log.Info("Demo user created: username %q", d.seedUsername)
	}
}

// List returns every user in insertion order
func (d *UserDirectory) List() []models.User {
	users := []models.User{}
	d.kv.Get(KeyUsers, &users)
	return users
}

// Create appends a new user. It does not check username uniqueness; callers
// pre-check with FindByUsername. The returned record is what was attempted;
// persistence failures are only logged.
func (d *UserDirectory) Create(username, password string) *models.User {
	user := models.User{
		ID:        newID(),
		Username:  username,
		Password:  password,
		CreatedAt: d.now().UTC(),
	}

	users := append(d.List(), user)
	d.save(users)
	return &user
}

// FindByUsername returns the first user with exactly this username, or nil
func (d *UserDirectory) FindByUsername(username string) *models.User {
	for _, user := range d.List() {
		if user.Username == username {
			return &user
		}
	}
	return nil
}

// Validate returns the user when username exists and password matches
// byte for byte, otherwise nil
func (d *UserDirectory) Validate(username, password string) *models.User {
	user := d.FindByUsername(username)
	if user == nil || user.Password != password {
		return nil
	}
	return user
}

func (d *UserDirectory) save(users []models.User) bool {
	return d.kv.Put(KeyUsers, users)
}

func newID() string {
	return uuid.New().String()
}
