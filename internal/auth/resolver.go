package auth

import (
	"context"
	"fmt"
	"sort"

	"github.com/anighost1/pp-be/internal/db/models"
)

// Provenance records how a permission entered the effective set.
type Provenance string

const (
	// FromRole marks a permission inherited through a role.
	FromRole Provenance = "role"
	// FromPermission marks a permission granted directly to the user.
	FromPermission Provenance = "permission"
)

// EffectivePermission is one entry of a user's effective permission set.
type EffectivePermission struct {
	ID   uint       `json:"id"`
	Name string     `json:"name"`
	From Provenance `json:"from,omitempty"`
}

// Resolution is the outcome of resolving a user's permissions.
// Permissions are ordered by id.
type Resolution struct {
	SuperUser   bool                  `json:"isSuperAdmin"`
	Permissions []EffectivePermission `json:"permissions"`
}

// Has reports whether the resolution grants the named permission.
// A superuser holds every permission.
func (r Resolution) Has(name string) bool {
	if r.SuperUser {
		return true
	}

	for _, p := range r.Permissions {
		if p.Name == name {
			return true
		}
	}

	return false
}

// Catalog supplies the full list of active permissions.
type Catalog interface {
	ActivePermissions(ctx context.Context) ([]models.Permission, error)
}

// Resolver computes effective permission sets.
type Resolver struct {
	superRole string
	catalog   Catalog
}

// NewResolver creates a resolver. Holding the role named superRole bypasses
// aggregation and yields the active catalog.
func NewResolver(superRole string, catalog Catalog) *Resolver {
	return &Resolver{superRole: superRole, catalog: catalog}
}

// IsSuperUser reports whether u holds the superuser role.
func (r *Resolver) IsSuperUser(u *models.User) bool {
	if u == nil {
		return false
	}

	for _, role := range u.Roles {
		if role.Name == r.superRole {
			return true
		}
	}

	return false
}

// Resolve returns the effective permissions of u.
// Revoked permissions never appear in the result.
func (r *Resolver) Resolve(ctx context.Context, u *models.User) (Resolution, error) {
	if u == nil {
		return Resolution{}, ErrInvalidInput
	}

	if r.IsSuperUser(u) {
		resolutionsTotal.WithLabelValues(pathSuperUser).Inc()

		catalog, err := r.catalog.ActivePermissions(ctx)
		if err != nil {
			return Resolution{}, fmt.Errorf("failed to load permission catalog: %w", err)
		}

		out := make([]EffectivePermission, 0, len(catalog))
		for _, p := range catalog {
			out = append(out, EffectivePermission{ID: p.ID, Name: p.Name})
		}
		sortPermissions(out)

		return Resolution{SuperUser: true, Permissions: out}, nil
	}

	resolutionsTotal.WithLabelValues(pathAggregate).Inc()

	set := Effective(u)
	out := make([]EffectivePermission, 0, len(set))
	for _, p := range set {
		out = append(out, p)
	}
	sortPermissions(out)

	return Resolution{Permissions: out}, nil
}

// Effective aggregates role permissions and direct grants of u keyed by
// permission id, then deletes every revoked id. The first insertion of an id
// decides its provenance, roles go first.
func Effective(u *models.User) map[uint]EffectivePermission {
	set := make(map[uint]EffectivePermission)
	if u == nil {
		return set
	}

	add := func(p models.Permission, from Provenance) {
		if _, ok := set[p.ID]; ok {
			return
		}
		set[p.ID] = EffectivePermission{ID: p.ID, Name: p.Name, From: from}
	}

	for _, role := range u.Roles {
		for _, p := range role.Permissions {
			add(p, FromRole)
		}
	}

	for _, p := range u.Permissions {
		add(p, FromPermission)
	}

	for _, p := range u.RevokedPermissions {
		delete(set, p.ID)
	}

	return set
}

func sortPermissions(perms []EffectivePermission) {
	sort.Slice(perms, func(i, j int) bool { return perms[i].ID < perms[j].ID })
}
