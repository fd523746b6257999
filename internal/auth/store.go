package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/db/controller/menu"
	"github.com/anighost1/pp-be/internal/db/controller/permission"
	"github.com/anighost1/pp-be/internal/db/controller/user"
	"github.com/anighost1/pp-be/internal/db/models"
)

// Store is the storage collaborator of the access service.
type Store interface {
	Catalog
	// Subject loads a user with roles, direct and revoked permissions and their menus.
	// A non-zero ulbID keeps only the roles scoped to that ULB.
	Subject(ctx context.Context, userID uint64, ulbID uint) (*models.User, error)
	// ActiveMenus lists every active menu.
	ActiveMenus(ctx context.Context) ([]models.Menu, error)
}

// GormStore implements Store on top of the db controllers.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a gorm backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Subject implements Store.
func (s *GormStore) Subject(ctx context.Context, userID uint64, ulbID uint) (*models.User, error) {
	return user.GetSubject(s.db.WithContext(ctx), userID, ulbID)
}

// ActivePermissions implements Catalog.
func (s *GormStore) ActivePermissions(ctx context.Context) ([]models.Permission, error) {
	return permission.ActiveCatalog(s.db.WithContext(ctx))
}

// ActiveMenus implements Store.
func (s *GormStore) ActiveMenus(ctx context.Context) ([]models.Menu, error) {
	return menu.Active(s.db.WithContext(ctx))
}
