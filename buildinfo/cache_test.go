package buildinfo_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-service/buildinfo"
)

type fakeRevision struct {
	mu       sync.Mutex
	revision string
	err      error
	calls    int
}

func (f *fakeRevision) Revision(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.revision, nil
}

func (f *fakeRevision) set(revision string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revision = revision
	f.err = err
}

func (f *fakeRevision) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func writeMetadata(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithinTTLServesCachedSnapshot(t *testing.T) {
	path := writeMetadata(t, `{"description": "demo service", "version": "1.2.3"}`)
	revision := &fakeRevision{revision: "abc123"}
	cache := buildinfo.NewCache(path, revision, time.Minute)

	first, err := cache.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "demo service", first.Metadata.Description)
	require.Equal(t, "1.2.3", first.Metadata.Version)
	require.Equal(t, "abc123", first.Revision)

	// A changed revision must not surface while the TTL holds.
	revision.set("def456", nil)
	second, err := cache.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, revision.callCount())
}

func TestLoadAfterTTLReloads(t *testing.T) {
	path := writeMetadata(t, `{"description": "demo service", "version": "1.2.3"}`)
	revision := &fakeRevision{revision: "abc123"}
	cache := buildinfo.NewCache(path, revision, 10*time.Millisecond)

	_, err := cache.Load(context.Background())
	require.NoError(t, err)

	revision.set("def456", nil)
	time.Sleep(20 * time.Millisecond)

	reloaded, err := cache.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "def456", reloaded.Revision)
	require.Equal(t, 2, revision.callCount())
}

func TestLoadMissingMetadataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	cache := buildinfo.NewCache(path, &fakeRevision{revision: "abc123"}, time.Minute)

	_, err := cache.Load(context.Background())
	require.ErrorIs(t, err, buildinfo.ErrConfigUnavailable)
}

func TestLoadMalformedMetadata(t *testing.T) {
	path := writeMetadata(t, `{not json`)
	cache := buildinfo.NewCache(path, &fakeRevision{revision: "abc123"}, time.Minute)

	_, err := cache.Load(context.Background())
	require.ErrorIs(t, err, buildinfo.ErrConfigUnavailable)
}

func TestLoadRevisionFailureSurfacesConfigUnavailable(t *testing.T) {
	path := writeMetadata(t, `{"description": "demo service", "version": "1.2.3"}`)
	revision := &fakeRevision{revision: "abc123"}
	cache := buildinfo.NewCache(path, revision, 10*time.Millisecond)

	_, err := cache.Load(context.Background())
	require.NoError(t, err)

	revision.set("", errors.New("revision lookup unavailable"))
	time.Sleep(20 * time.Millisecond)

	_, err = cache.Load(context.Background())
	require.ErrorIs(t, err, buildinfo.ErrConfigUnavailable)

	// Recovery: the next successful reload serves fresh data again.
	revision.set("def456", nil)
	recovered, err := cache.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "def456", recovered.Revision)
}

func TestGitRevisionOutsideRepository(t *testing.T) {
	lookup := buildinfo.GitRevision{Dir: t.TempDir(), Timeout: 5 * time.Second}
	_, err := lookup.Revision(context.Background())
	require.Error(t, err)
}
