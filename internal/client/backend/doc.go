// Package backend is the HTTP client of the myhealth REST API.
//
// # Overview
//
// Every endpoint answers with a JSON envelope {"error": string, "data": any}.
// The package translates that convention at the boundary: callers receive
// either a decoded value or a *Error tagged with one of three kinds.
//
//   - KindTransport: the request could not be completed (timeout, refused
//     connection, malformed body, or a non-2xx status without an error
//     string).
//   - KindApplication: the backend reported a business error.
//   - KindNotFound: HTTP 404 paired with a non-empty error string.
//
// Requests are never retried. The base URL is parsed once by New and shared
// by all calls.
//
// See Also
//
//   - Generic calls: Fetch, List, Upsert, Delete
//   - Facades:       (*Client).GetFood, (*Client).GetUserSettings, (*Client).ListWeight, ...
//   - Errors:        Error, KindOf, IsNotFound
package backend
