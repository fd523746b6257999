// Package auth provides token authentication middleware for the API.
//
// RequireToken validates the bearer token of a request:
//   - a missing or non-Bearer Authorization header is rejected with 401
//   - an expired token is rejected with 401 "Token has expired"
//   - a token with a bad signature or shape is rejected with 401 "Invalid token"
//   - a token whose id was logged out is rejected with 401
//
// On success the claims are stored in the "claims" local and the user id in
// the "userid" local, which the access logger reads.
//
// RequirePermission checks the permission snapshot carried by the token.
// Superusers pass every check.
//
// Usage:
//
//	api := app.Group("/api/panel", authmw.RequireToken(tokens, denylist))
//	api.Put("/employee/connect-role", authmw.RequirePermission(auth.PermEmployeeAccess), h)
package auth
