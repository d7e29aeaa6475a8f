package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"campaignmanager/models"
)

var errBroken = errors.New("medium is broken")

// brokenBackend fails every operation
type brokenBackend struct{}

func (brokenBackend) Get(string) ([]byte, bool, error) { return nil, false, errBroken }
func (brokenBackend) Set(string, []byte) error         { return errBroken }
func (brokenBackend) Delete(string) error              { return errBroken }
func (brokenBackend) Keys() ([]string, error)          { return nil, errBroken }
func (brokenBackend) Close() error                     { return nil }

var _ Backend = brokenBackend{}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestStore builds an initialized store on two fresh memory backends
func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	s := New(NewMemoryBackend(0), NewMemoryBackend(0), opts...)
	s.Init()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func bannerData(text string) *models.BannerData {
	return &models.BannerData{
		Size:            models.BannerSquare,
		Text:            text,
		FontFamily:      "Arial",
		FontSize:        24,
		TextColor:       "#ffffff",
		BackgroundColor: "#007bff",
	}
}

func emailData(subject string) *models.EmailData {
	return &models.EmailData{
		Template:     models.EmailNewsletter,
		Subject:      subject,
		Heading:      "Hello",
		Content:      "<p>Body</p>",
		CTAText:      "Read more",
		CTAURL:       "https://example.com",
		FontFamily:   "Arial",
		PrimaryColor: "#333333",
		AccentColor:  "#007bff",
	}
}

func landingData(title string) *models.LandingData {
	return &models.LandingData{
		Template:    models.LandingHero,
		PageTitle:   title,
		MainHeading: "Welcome",
		EnableForm:  true,
		SubmitText:  "Send",
	}
}
