package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anighost1/pp-be/internal/db/models"
)

type fakeCatalog struct {
	perms []models.Permission
	err   error
	calls int
}

func (f *fakeCatalog) ActivePermissions(context.Context) ([]models.Permission, error) {
	f.calls++
	return f.perms, f.err
}

func perm(id uint) models.Permission {
	return models.Permission{ID: id, Name: fmt.Sprintf("p%d", id), Active: true}
}

func role(name string, perms ...models.Permission) models.Role {
	return models.Role{Name: name, Active: true, Permissions: perms}
}

func permIDs(perms []EffectivePermission) []uint {
	out := make([]uint, 0, len(perms))
	for _, p := range perms {
		out = append(out, p.ID)
	}

	return out
}

func TestResolve(t *testing.T) {
	p1, p2, p3 := perm(1), perm(2), perm(3)

	tests := []struct {
		name string
		user models.User
		want []uint
	}{
		{
			name: "roles plus direct minus revoked",
			user: models.User{
				Roles:              []models.Role{role("clerk", p1, p2)},
				Permissions:        []models.Permission{p3},
				RevokedPermissions: []models.Permission{p2},
			},
			want: []uint{1, 3},
		},
		{
			name: "revocation beats role and direct grant",
			user: models.User{
				Roles:              []models.Role{role("clerk", p1, p2)},
				Permissions:        []models.Permission{p2},
				RevokedPermissions: []models.Permission{p2},
			},
			want: []uint{1},
		},
		{
			name: "revoking an ungranted permission is a no-op",
			user: models.User{
				RevokedPermissions: []models.Permission{p1, p2},
			},
			want: []uint{},
		},
		{
			name: "permission shared by two roles appears once",
			user: models.User{
				Roles: []models.Role{role("a", p3, p1), role("b", p1)},
			},
			want: []uint{1, 3},
		},
		{
			name: "revoked matched by id not by value",
			user: models.User{
				Roles:              []models.Role{role("a", p1)},
				RevokedPermissions: []models.Permission{{ID: 1, Name: "renamed"}},
			},
			want: []uint{},
		},
	}

	r := NewResolver("super-admin", &fakeCatalog{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(context.Background(), &tt.user)
			require.NoError(t, err)
			assert.False(t, res.SuperUser)
			assert.Equal(t, tt.want, permIDs(res.Permissions))

			for _, revoked := range tt.user.RevokedPermissions {
				assert.NotContains(t, permIDs(res.Permissions), revoked.ID)
			}
		})
	}
}

func TestResolveProvenanceFirstInsertionWins(t *testing.T) {
	p1, p2 := perm(1), perm(2)
	u := &models.User{
		Roles:       []models.Role{role("clerk", p1)},
		Permissions: []models.Permission{p1, p2},
	}

	res, err := NewResolver("super-admin", &fakeCatalog{}).Resolve(context.Background(), u)
	require.NoError(t, err)

	assert.Equal(t, []EffectivePermission{
		{ID: 1, Name: p1.Name, From: FromRole},
		{ID: 2, Name: p2.Name, From: FromPermission},
	}, res.Permissions)
}

func TestResolveSuperUser(t *testing.T) {
	catalog := &fakeCatalog{perms: []models.Permission{perm(5), perm(2), perm(9)}}
	r := NewResolver("super-admin", catalog)

	u := &models.User{
		Roles:              []models.Role{role("clerk", perm(1)), role("super-admin")},
		Permissions:        []models.Permission{perm(3)},
		RevokedPermissions: []models.Permission{perm(2)},
	}

	res, err := r.Resolve(context.Background(), u)
	require.NoError(t, err)
	assert.True(t, res.SuperUser)
	assert.Equal(t, []uint{2, 5, 9}, permIDs(res.Permissions))
	assert.Equal(t, 1, catalog.calls)
	assert.True(t, res.Has("anything"))
}

func TestResolveSuperUserCatalogError(t *testing.T) {
	boom := errors.New("boom")
	r := NewResolver("super-admin", &fakeCatalog{err: boom})

	_, err := r.Resolve(context.Background(), &models.User{Roles: []models.Role{role("super-admin")}})
	require.ErrorIs(t, err, boom)
}

func TestResolveIdempotent(t *testing.T) {
	u := &models.User{
		Roles:              []models.Role{role("a", perm(4), perm(2)), role("b", perm(7), perm(1))},
		Permissions:        []models.Permission{perm(3), perm(2)},
		RevokedPermissions: []models.Permission{perm(7)},
	}
	r := NewResolver("super-admin", &fakeCatalog{})

	first, err := r.Resolve(context.Background(), u)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), u)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveNilUser(t *testing.T) {
	_, err := NewResolver("super-admin", &fakeCatalog{}).Resolve(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolutionHas(t *testing.T) {
	res := Resolution{Permissions: []EffectivePermission{{ID: 1, Name: PermEmployeeAccess}}}
	assert.True(t, res.Has(PermEmployeeAccess))
	assert.False(t, res.Has("other"))
}
