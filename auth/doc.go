// Package auth issues and validates HS256 access tokens for the admin
// endpoints.
//
// Tokens carry the subject and role as claims and are signed with a
// shared secret. The package is protocol-agnostic apart from the
// optional HTTP middleware in RequireToken.
package auth
