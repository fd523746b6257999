// Package auth computes what an employee may do and see.
//
// # Permission resolution
//
// Resolver turns a user snapshot (roles with their permissions, direct
// grants, revoked permissions) into the effective permission set:
//   - a user holding the superuser role receives every active permission
//   - otherwise role permissions and direct grants are merged by permission id
//   - every revoked permission is removed, whatever path granted it
//
// Each entry carries its provenance, "role" or "permission". When a
// permission is reachable both ways the role wins, since roles are merged first.
//
// # Menus
//
// BuildMenuTree links a flat, pre-sorted menu list into a forest in two
// passes without recursion. A menu whose parent is missing becomes a root.
// SortMenus orders the flat list by the order field in an explicit direction.
//
// Service.MenusForUser collects the active menus of a user's role and direct
// permissions, drops menus attached to revoked permissions, sorts and builds
// the forest. Superusers get every active menu.
//
// # Sessions
//
// LocalProvider checks credentials and TokenManager issues HS256 tokens
// that embed a snapshot of the resolution. Tokens are not re-checked against
// live permission state until the next login.
//
// Example usage:
//
//	access := auth.NewService(auth.NewGormStore(db), "super-admin", auth.SortDesc)
//
//	u, err := auth.NewLocalProvider(db).Authenticate(ctx, "alice", "secret")
//	snap, err := access.Snapshot(ctx, u)
//	token, claims, err := tokens.Issue(u, snap.Resolution)
//
//	menus, err := access.MenusForUser(ctx, u.ID, 0)
package auth
