package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrInvalid reports a malformed or wrongly-prefixed ID string.
var ErrInvalid = errors.New("idx: invalid id")

var (
	globalOnce sync.Once
	global     *generator
)

// generator safely produces ULIDs concurrently from a monotonic source.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) NewAt(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(t), g.entropy)
	return u.String()
}

func initGlobal() {
	src := ulid.Monotonic(rand.Reader, 0) // Max Monotonic Window
	global = &generator{entropy: src}
}

// New returns a lexicographically sortable ULID string using the current
// time in UTC and a monotonic entropy source.
func New() string {
	globalOnce.Do(initGlobal)
	return global.NewAt(time.Now().UTC())
}

// NewAt generates an ID at the provided time (UTC), useful for tests or
// constructing time-bounded cursors.
func NewAt(t time.Time) string {
	globalOnce.Do(initGlobal)
	return global.NewAt(t.UTC())
}

// NewWithPrefix returns "<prefix>_<ULID>", the entity ID scheme used across
// the platform (e.g. "usr_01J...").
func NewWithPrefix(prefix string) string {
	return prefix + "_" + New()
}

// Parse validates "<prefix>_<ULID>" and returns the bare ULID portion.
func Parse(prefix, s string) (string, error) {
	s = strings.TrimSpace(s)
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok || rest == "" {
		return "", ErrInvalid
	}

	if _, err := ulid.ParseStrict(rest); err != nil {
		return "", ErrInvalid
	}
	return rest, nil
}

// Valid reports whether s is a well-formed ID carrying the given prefix.
func Valid(prefix, s string) bool {
	_, err := Parse(prefix, s)
	return err == nil
}
