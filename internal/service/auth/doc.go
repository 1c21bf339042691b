// Package auth issues and validates JWT access and refresh tokens carrying
// the user's role, hashes passwords with bcrypt, and tracks revoked refresh
// tokens.
package auth
