package captcha

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDir is the captcha scratch directory used when none is configured.
const DefaultDir = "captcha_catch"

// Store owns the temporary directory that holds fetched captcha images.
//
// Images are named with a nanosecond timestamp, which keeps sequential
// attempts from colliding but is not collision-proof across concurrent
// processes sharing a directory; give each logical actor its own Store.
type Store struct {
	dir string
	log zerolog.Logger
}

// NewStore creates the scratch directory if needed and returns a Store for
// it. Creation is idempotent; an existing directory is reused as-is.
func NewStore(dir string, log zerolog.Logger) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create captcha directory %s: %w", dir, err)
	}
	log.Info().Str("dir", dir).Msg("captcha scratch directory ready")
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the scratch directory path.
func (s *Store) Dir() string { return s.dir }

// NewPath returns a fresh timestamp-named image path inside the directory.
// No file is created; the caller writes to it.
func (s *Store) NewPath() string {
	return filepath.Join(s.dir, fmt.Sprintf("captcha_%d.png", time.Now().UnixNano()))
}

// Remove deletes one captcha image. Removing a path that is already gone is
// a no-op; other failures are logged and swallowed, since cleanup must
// never abort a submission.
func (s *Store) Remove(path string) {
	if path == "" {
		return
	}
	err := os.Remove(path)
	switch {
	case err == nil:
		s.log.Info().Str("path", path).Msg("captcha image removed")
	case os.IsNotExist(err):
	default:
		s.log.Warn().Err(err).Str("path", path).Msg("failed to remove captcha image")
	}
}

// PurgeAll removes every captcha_*.png straggler in the directory. Meant
// for process shutdown, replacing reliance on best-effort finalizers.
func (s *Store) PurgeAll() {
	matches, err := filepath.Glob(filepath.Join(s.dir, "captcha_*.png"))
	if err != nil {
		s.log.Warn().Err(err).Msg("captcha purge failed")
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", m).Msg("failed to remove captcha image")
		}
	}
	s.log.Info().Int("count", len(matches)).Msg("captcha images purged")
}
