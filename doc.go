// Package main is the entry point of pp-be, the back-office API of the
// municipal services panel. It authenticates staff, resolves their effective
// permissions from roles, direct grants and revocations, and serves the
// navigation menu tree they are allowed to see.
package main
