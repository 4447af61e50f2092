// Package integrations provides the shared HTTP client used by the upstream
// API clients.
//
// Subpackages:
//   - [tse]: the public elections-results API (elections, states,
//     municipalities, elected candidates)
//   - [picwish]: the image-processing task API (enhance, remove background,
//     ID-photo crop) with submit/poll semantics
//
// [Client] adds a response cache for idempotent GETs, default headers and a
// status-to-error mapping ([ErrNotFound], [ErrUnauthorized], [ErrNetwork]).
// Requests are never retried automatically; the only repeated request in the
// system is the image-job poll loop, which lives in [picwish].
//
// [tse]: github.com/matzehuels/eleitos/pkg/integrations/tse
// [picwish]: github.com/matzehuels/eleitos/pkg/integrations/picwish
package integrations
