package docs

import (
	"errors"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

type fakeRecorder struct {
	mu        sync.Mutex
	manifests map[string]int
	renders   int
	lookups   map[metrics.LookupResult]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{manifests: map[string]int{}, lookups: map[metrics.LookupResult]int{}}
}

func (f *fakeRecorder) ObserveManifestBuild(set string, _ time.Duration, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manifests[set] = n
}

func (f *fakeRecorder) ObserveRenderDuration(string, time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders++
}

func (f *fakeRecorder) IncLookupResult(_ string, r metrics.LookupResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups[r]++
}

func (f *fakeRecorder) ObserveHTTPRequest(string, int, time.Duration) {}
func (f *fakeRecorder) IncContentChange()                             {}

// failingFS refuses to open one path.
type failingFS struct {
	fs.FS
	fail string
}

func (f failingFS) Open(name string) (fs.File, error) {
	if name == f.fail {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errors.New("permission denied")}
	}
	return f.FS.Open(name)
}

func newTestSet(t *testing.T, cfg config.DocumentSet, root fs.FS, opts ...Option) *Set {
	t.Helper()
	set, err := NewSet(cfg, root, ".txt", opts...)
	require.NoError(t, err)
	return set
}

func slugs(entries []Summary) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Slug
	}
	return out
}

// lockedDirFS refuses to list one directory.
type lockedDirFS struct {
	fstest.MapFS
	locked string
}

func (l lockedDirFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == l.locked {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}
	return l.MapFS.ReadDir(name)
}
