// Package portal implements the client for the municipal traffic-violation
// web form: it fetches the form page, resolves the captcha challenge,
// assembles the multipart submission and interprets the HTML response.
//
// The field names, fixed header set and error-string conventions are
// dictated by the portal and replicated exactly. A Client owns its own HTTP
// session (cookie jar), captcha scratch directory and logger; build one per
// logical actor. Clients are not safe for concurrent submissions: the
// session cookies and the captcha directory are shared state across one
// client's calls.
//
// The single public operation is Client.SubmitViolation. It is total for
// domain-level failures: a missing video file, an unsolvable captcha, a
// server rejection or a transport error all come back as a failed
// SubmissionResult, never as an error.
package portal
