package storage

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseBackend runs the behaviour every driver must share
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()

	_, found, err := b.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, b.Set("campaignManager_users", []byte(`[{"id":"u1"}]`)))
	require.NoError(t, b.Set("campaignManager_campaigns", []byte(`[]`)))

	value, found, err := b.Get("campaignManager_users")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[{"id":"u1"}]`, string(value))

	require.NoError(t, b.Set("campaignManager_users", []byte(`[]`)))
	value, _, err = b.Get("campaignManager_users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))

	keys, err := b.Keys()
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"campaignManager_campaigns", "campaignManager_users"}, keys)

	require.NoError(t, b.Delete("campaignManager_users"))
	require.NoError(t, b.Delete("campaignManager_users"), "deleting a missing key is not an error")

	_, found, err = b.Get("campaignManager_users")
	require.NoError(t, err)
	assert.False(t, found)

	keys, err = b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"campaignManager_campaigns"}, keys)
}

func TestMemoryBackend(t *testing.T) {
	t.Parallel()

	b := NewMemoryBackend(0)
	exerciseBackend(t, b)
	require.NoError(t, b.Close())

	_, _, err := b.Get("campaignManager_campaigns")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, b.Set("k", []byte("v")), ErrUnavailable)
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	t.Parallel()

	b := NewMemoryBackend(0)
	value := []byte(`"a"`)
	require.NoError(t, b.Set("k", value))
	value[1] = 'b'

	got, _, err := b.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(got))
}

func TestMemoryBackendTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := NewMemoryBackend(time.Minute)
	b.now = clock.Now

	require.NoError(t, b.Set("k", []byte("1")))
	clock.Advance(30 * time.Second)
	_, found, _ := b.Get("k")
	assert.True(t, found)

	clock.Advance(time.Minute)
	_, found, _ = b.Get("k")
	assert.False(t, found)

	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	exerciseBackend(t, b)

	info, err := os.Stat(filepath.Join(dir, "kv", "campaignManager_campaigns.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileBackendEscapesKeys(t *testing.T) {
	t.Parallel()

	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, b.Set("../escape/attempt", []byte("1")))
	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"../escape/attempt"}, keys)
}

func TestFileBackendRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewFileBackend("  ")
	assert.Error(t, err)
}

func TestBoltBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b, err := NewBoltBackend(dir)
	require.NoError(t, err)
	exerciseBackend(t, b)
	require.NoError(t, b.Close())

	// Data survives a reopen
	b, err = NewBoltBackend(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	value, found, err := b.Get("campaignManager_campaigns")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "[]", string(value))
}

func TestSQLiteBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b, err := NewSQLiteBackend(dir)
	require.NoError(t, err)
	exerciseBackend(t, b)
	require.NoError(t, b.Close())

	b, err = NewSQLiteBackend(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	value, found, err := b.Get("campaignManager_campaigns")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "[]", string(value))
}

func TestSQLiteBackendRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewSQLiteBackend("")
	assert.Error(t, err)
}

func TestOpenBackend(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{DriverMemory, DriverFile, DriverBolt, DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			t.Parallel()

			b, err := OpenBackend(driver, BackendOptions{Path: t.TempDir()})
			require.NoError(t, err)
			t.Cleanup(func() { _ = b.Close() })
			exerciseBackend(t, b)
		})
	}

	_, err := OpenBackend("floppy", BackendOptions{})
	assert.Error(t, err)
}
