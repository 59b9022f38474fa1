package dialogue

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// ErrNoDialogue is returned for scripts that contain no records.
var ErrNoDialogue = errors.New("dialogue: script has no lines")

type entry struct {
	digest uint64
	lines  []Line
	stale  bool
}

// Loader reads scripts from a file system and caches the parsed lines. A
// cached script is re-read only after Invalidate, and re-parsed only when its
// contents changed.
type Loader struct {
	fsys fs.FS
	root string
	log  *zap.Logger

	mu    sync.Mutex
	cache map[string]*entry
}

// NewLoader returns a loader over fsys.
func NewLoader(fsys fs.FS, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{fsys: fsys, log: log, cache: make(map[string]*entry)}
}

// NewDirLoader returns a loader rooted at a directory on disk.
func NewDirLoader(root string, log *zap.Logger) *Loader {
	l := NewLoader(os.DirFS(root), log)
	l.root = root
	return l
}

// Root returns the directory the loader was created for, if any.
func (l *Loader) Root() string {
	return l.root
}

func cleanName(name string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(name)), "./")
}

// Load returns the lines of the named script.
func (l *Loader) Load(name string) ([]Line, error) {
	name = cleanName(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	cached, ok := l.cache[name]
	if ok && !cached.stale {
		return slices.Clone(cached.lines), nil
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		delete(l.cache, name)
		return nil, fmt.Errorf("dialogue: read %s: %w", name, err)
	}

	digest := xxhash.Sum64(data)
	if ok && cached.digest == digest {
		cached.stale = false
		return slices.Clone(cached.lines), nil
	}

	lines := Parse(data)
	if len(lines) == 0 {
		delete(l.cache, name)
		return nil, fmt.Errorf("dialogue: parse %s: %w", name, ErrNoDialogue)
	}
	l.cache[name] = &entry{digest: digest, lines: lines}
	l.log.Debug("dialogue script loaded", zap.String("script", name), zap.Int("lines", len(lines)))
	return slices.Clone(lines), nil
}

// Invalidate forces the next Load of name to re-read the file.
func (l *Loader) Invalidate(name string) {
	name = cleanName(name)
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.cache[name]; ok {
		e.stale = true
	}
}

// InvalidateFile maps an on-disk path under the loader root to a script name
// and invalidates it.
func (l *Loader) InvalidateFile(file string) {
	if l.root == "" {
		l.Invalidate(file)
		return
	}
	rel, err := filepath.Rel(l.root, file)
	if err != nil {
		l.log.Warn("dialogue: path outside script root", zap.String("path", file), zap.Error(err))
		return
	}
	l.Invalidate(rel)
}
