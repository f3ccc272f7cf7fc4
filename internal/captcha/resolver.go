package captcha

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultMaxAttempts is the retry budget used when none is configured.
const DefaultMaxAttempts = 3

// Resolver drives the fetch+solve cycle within a bounded attempt budget.
//
// Attempts are strictly sequential: a failed attempt's image is removed
// before the next fetch, because the endpoint may issue a fresh challenge
// per request and at most one image may be live at a time.
type Resolver struct {
	fetcher     Fetcher
	solver      Solver
	store       *Store
	maxAttempts int
	log         zerolog.Logger
}

// NewResolver builds a Resolver. A maxAttempts below one falls back to
// DefaultMaxAttempts.
func NewResolver(fetcher Fetcher, solver Solver, store *Store, maxAttempts int, log zerolog.Logger) *Resolver {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Resolver{fetcher: fetcher, solver: solver, store: store, maxAttempts: maxAttempts, log: log}
}

// Resolve fetches and solves captchas until one attempt succeeds or the
// budget runs out. On success it returns the accepted text and the path of
// the image it came from; the caller owns that file's removal. On
// exhaustion the last image has already been removed and the returned
// *Error wraps ErrRetriesExhausted.
func (r *Resolver) Resolve(ctx context.Context) (text, path string, err error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		path, err = r.fetcher.Fetch(ctx)
		if err != nil {
			r.log.Warn().Err(err).Int("attempt", attempt).Msg("captcha fetch failed, retrying")
			path = ""
			continue
		}

		text, err = r.solver.Solve(path)
		if err == nil {
			return text, path, nil
		}

		r.log.Warn().Err(err).Int("attempt", attempt).Msg("captcha solve failed, retrying")
		r.store.Remove(path)
		path = ""
	}

	r.log.Error().Int("max_attempts", r.maxAttempts).Msg("captcha retry budget exhausted")
	return "", "", &Error{
		Op:     "resolve",
		Reason: fmt.Sprintf("no acceptable result in %d attempts", r.maxAttempts),
		Err:    ErrRetriesExhausted,
	}
}
