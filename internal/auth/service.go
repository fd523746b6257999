package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/anighost1/pp-be/internal/db/controller/user"
	"github.com/anighost1/pp-be/internal/db/models"
)

// MenuResult is the menu forest served to a user.
type MenuResult struct {
	SuperUser bool        `json:"isSuperAdmin"`
	Menus     []*MenuNode `json:"menus"`
}

// Snapshot is the capability snapshot embedded into a session token.
type Snapshot struct {
	Resolution
	Menus []*MenuNode `json:"menus"`
}

// Service combines the resolver and the menu tree builder over a Store.
type Service struct {
	store     Store
	resolver  *Resolver
	direction SortDirection
}

// NewService creates the access service.
func NewService(store Store, superRole string, direction SortDirection) *Service {
	return &Service{
		store:     store,
		resolver:  NewResolver(superRole, store),
		direction: direction,
	}
}

// Resolver returns the resolver used by the service.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// ResolvePermissions loads the user and returns its effective permissions.
func (s *Service) ResolvePermissions(ctx context.Context, userID uint64) (Resolution, error) {
	u, err := s.subject(ctx, userID, 0)
	if err != nil {
		return Resolution{}, err
	}

	return s.resolver.Resolve(ctx, u)
}

// MenusForUser loads the user and returns its menu forest.
// A non-zero ulbID restricts contributing roles to that ULB.
func (s *Service) MenusForUser(ctx context.Context, userID uint64, ulbID uint) (MenuResult, error) {
	u, err := s.subject(ctx, userID, ulbID)
	if err != nil {
		return MenuResult{}, err
	}

	super := s.resolver.IsSuperUser(u)

	menus, err := s.menus(ctx, u, super)
	if err != nil {
		return MenuResult{}, err
	}

	return MenuResult{SuperUser: super, Menus: menus}, nil
}

// Snapshot resolves permissions and menus of an already loaded user.
func (s *Service) Snapshot(ctx context.Context, u *models.User) (Snapshot, error) {
	res, err := s.resolver.Resolve(ctx, u)
	if err != nil {
		return Snapshot{}, err
	}

	menus, err := s.menus(ctx, u, res.SuperUser)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Resolution: res, Menus: menus}, nil
}

func (s *Service) subject(ctx context.Context, userID uint64, ulbID uint) (*models.User, error) {
	u, err := s.store.Subject(ctx, userID, ulbID)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	return u, nil
}

func (s *Service) menus(ctx context.Context, u *models.User, super bool) ([]*MenuNode, error) {
	var flat []MenuRecord

	if super {
		all, err := s.store.ActiveMenus(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load menus: %w", err)
		}

		flat = make([]MenuRecord, 0, len(all))
		for _, m := range all {
			flat = append(flat, RecordFromModel(m))
		}
	} else {
		flat = UserMenus(u)
	}

	return BuildMenuTree(SortMenus(flat, s.direction)), nil
}

// UserMenus collects the active menus reachable through the role and direct
// permissions of u, then drops every menu attached to a revoked permission.
// The result is ordered by menu id.
func UserMenus(u *models.User) []MenuRecord {
	byID := make(map[uint]MenuRecord)
	if u == nil {
		return nil
	}

	put := func(perms []models.Permission) {
		for _, p := range perms {
			for _, m := range p.Menus {
				if m.Active {
					byID[m.ID] = RecordFromModel(m)
				}
			}
		}
	}

	for _, role := range u.Roles {
		put(role.Permissions)
	}
	put(u.Permissions)

	for _, p := range u.RevokedPermissions {
		for _, m := range p.Menus {
			delete(byID, m.ID)
		}
	}

	out := make([]MenuRecord, 0, len(byID))
	for _, m := range byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}
