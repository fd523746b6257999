// Package uniuri generates cryptographically secure random strings, used for
// generated administrator passwords.
package uniuri
