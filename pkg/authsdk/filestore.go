package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileStore keeps the token pair in a JSON file so separate processes on the
// same machine share one session. The file's directory is watched with
// fsnotify; when another process replaces the file, this store reloads it and
// notifies subscribers, so a login or logout in one CLI invocation is visible
// to a long-running sibling without polling.
type FileStore struct {
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu     sync.RWMutex
	tokens Tokens
	subs   map[int]func(Tokens)
	nextID int
}

// NewFileStore opens (or creates the directory for) the token file at path
// and starts watching it. Callers must Close the store when done with it.
func NewFileStore(path string) (*FileStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve token file path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o700); err != nil {
		return nil, fmt.Errorf("create token directory: %w", err)
	}

	tokens, err := readTokenFile(abs)
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file. Atomic saves replace the file by
	// rename, which would silently detach a watch on the file itself.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch token directory: %w", err)
	}

	s := &FileStore{
		path:    abs,
		watcher: watcher,
		done:    make(chan struct{}),
		tokens:  tokens,
		subs:    make(map[int]func(Tokens)),
	}
	go s.watch()
	return s, nil
}

// Load returns the pair as of the last observed change.
func (s *FileStore) Load() (Tokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, nil
}

// Save atomically replaces the token file and notifies subscribers.
func (s *FileStore) Save(t Tokens) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}

	s.mu.Lock()
	if err := writeFileAtomic(s.path, data); err != nil {
		s.mu.Unlock()
		return err
	}
	changed := s.tokens != t
	s.tokens = t
	var subs []func(Tokens)
	if changed {
		subs = snapshotSubs(s.subs)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
	return nil
}

// Clear wipes the stored pair. The file is kept, holding an empty pair, so
// sibling processes observe the logout as a change rather than a missing
// file.
func (s *FileStore) Clear() error {
	return s.Save(Tokens{})
}

// Subscribe registers fn for change notifications, including changes made by
// other processes.
func (s *FileStore) Subscribe(fn func(Tokens)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close stops the file watcher. The store stays readable but no longer sees
// other processes' changes.
func (s *FileStore) Close() error {
	close(s.done)
	return s.watcher.Close()
}

func (s *FileStore) watch() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			s.reload()
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			// Overflow or similar. The next event on the file will
			// resync us; nothing useful to do here.
		}
	}
}

// reload reads the file and notifies subscribers if the pair changed. Saves
// made through this store update the cache first, so their own events come
// back equal and fan out nothing.
func (s *FileStore) reload() {
	t, err := readTokenFile(s.path)
	if err != nil {
		// Likely a half-written file from a non-atomic writer. Keep the
		// cached pair; the follow-up event will pick up the final state.
		return
	}

	s.mu.Lock()
	if s.tokens == t {
		s.mu.Unlock()
		return
	}
	s.tokens = t
	subs := snapshotSubs(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
}

// readTokenFile loads the pair from disk. A missing file is a logged-out
// session, not an error.
func readTokenFile(path string) (Tokens, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Tokens{}, nil
	}
	if err != nil {
		return Tokens{}, fmt.Errorf("read token file: %w", err)
	}

	var t Tokens
	if err := json.Unmarshal(data, &t); err != nil {
		return Tokens{}, fmt.Errorf("parse token file: %w", err)
	}
	return t, nil
}

// writeFileAtomic writes data to a same-directory temp file and renames it
// over path, so readers and watchers never see a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp token file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp token file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}
