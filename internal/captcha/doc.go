// Package captcha handles the portal's challenge images: fetching them into
// a scoped temporary directory, reading them with Tesseract OCR after image
// preprocessing, and retrying the fetch+solve cycle within a bounded budget.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Lifecycle
//
// Every fetched image is written under the Store's directory with a
// timestamp-derived name. Ownership is attempt-scoped: a failed solve
// removes its image before the next fetch, and the final image is removed
// by whoever received it (the submission client, or the caller on the
// manual-entry path). Store.PurgeAll removes any stragglers, typically at
// process shutdown.
//
// # Errors
//
// All failures surface as *Error. A Resolver that runs out of attempts
// returns an *Error wrapping ErrRetriesExhausted; errors.Is can be used to
// detect that case.
package captcha
