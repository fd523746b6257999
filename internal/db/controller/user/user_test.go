package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anighost1/pp-be/internal/db/controller/permission"
	"github.com/anighost1/pp-be/internal/db/controller/role"
	"github.com/anighost1/pp-be/internal/db/controller/ulb"
	"github.com/anighost1/pp-be/internal/db/dbtest"
	"github.com/anighost1/pp-be/internal/db/models"
)

func ids[T any](items []T, id func(T) uint) []uint {
	out := make([]uint, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}

	return out
}

func roleID(r models.Role) uint             { return r.ID }
func permissionID(p models.Permission) uint { return p.ID }
func ulbID(u models.Ulb) uint               { return u.ID }
func wardID(w models.Ward) uint             { return w.ID }

func TestCreateAndGetByUsername(t *testing.T) {
	db := dbtest.New(t)

	u, err := Create(db, "alice", "alice@example.org", "pw")
	require.NoError(t, err)
	assert.True(t, u.Active)
	assert.NotEqual(t, "pw", u.Password)

	_, err = Create(db, "alice", "other@example.org", "pw")
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = Create(db, "", "", "pw")
	require.ErrorIs(t, err, ErrUsernameEmpty)

	got, err := GetByUsername(db, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.VerifyPassword("pw"))

	_, err = GetByUsername(db, "bob")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = GetByUsername(nil, "alice")
	require.ErrorIs(t, err, ErrDBNil)
}

func TestGetSubjectLoadsGraph(t *testing.T) {
	db := dbtest.New(t)

	p1 := dbtest.Permission(t, db, "p1", true)
	p2 := dbtest.Permission(t, db, "p2", true)
	p3 := dbtest.Permission(t, db, "p3", true)
	dbtest.Menu(t, db, "m1", nil, 1, true, p1)
	dbtest.Menu(t, db, "m3", nil, 2, true, p3)

	r := dbtest.Role(t, db, "surveyor", nil, p1, p2)
	u := dbtest.User(t, db, "alice", []models.Role{r}, []models.Permission{p3}, []models.Permission{p2})

	got, err := GetSubject(db, u.ID, 0)
	require.NoError(t, err)

	require.Len(t, got.Roles, 1)
	assert.ElementsMatch(t, []uint{p1.ID, p2.ID}, ids(got.Roles[0].Permissions, permissionID))
	require.Len(t, got.Permissions, 1)
	require.Len(t, got.Permissions[0].Menus, 1)
	assert.Equal(t, "m3", got.Permissions[0].Menus[0].Label)
	assert.Equal(t, []uint{p2.ID}, ids(got.RevokedPermissions, permissionID))

	_, err = GetSubject(db, 9999, 0)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetSubjectFiltersRolesByUlb(t *testing.T) {
	db := dbtest.New(t)

	ulbA := models.Ulb{Name: "A", Active: true}
	ulbB := models.Ulb{Name: "B", Active: true}
	require.NoError(t, db.Create(&ulbA).Error)
	require.NoError(t, db.Create(&ulbB).Error)

	ra := dbtest.Role(t, db, "clerk-a", &ulbA.ID)
	rb := dbtest.Role(t, db, "clerk-b", &ulbB.ID)
	u := dbtest.User(t, db, "alice", []models.Role{ra, rb}, nil, nil)

	all, err := GetSubject(db, u.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all.Roles, 2)

	onlyA, err := GetSubject(db, u.ID, ulbA.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{ra.ID}, ids(onlyA.Roles, roleID))
}

func TestRoleConnections(t *testing.T) {
	db := dbtest.New(t)

	r1 := dbtest.Role(t, db, "r1", nil)
	r2 := dbtest.Role(t, db, "r2", nil)
	u := dbtest.User(t, db, "alice", nil, nil, nil)

	require.NoError(t, ConnectRoles(db, u.ID, []uint{r1.ID, r2.ID}))
	require.NoError(t, ConnectRoles(db, u.ID, []uint{r1.ID}), "connecting twice must not fail")

	got, err := GetSubject(db, u.ID, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{r1.ID, r2.ID}, ids(got.Roles, roleID))

	require.NoError(t, DisconnectRole(db, u.ID, r1.ID))
	got, err = GetSubject(db, u.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{r2.ID}, ids(got.Roles, roleID))

	require.ErrorIs(t, ConnectRoles(db, u.ID, []uint{4242}), role.ErrRoleNotFound)
	require.ErrorIs(t, ConnectRoles(db, u.ID, nil), ErrNoIDs)
	require.ErrorIs(t, ConnectRoles(db, 4242, []uint{r1.ID}), ErrUserNotFound)
	require.ErrorIs(t, DisconnectRole(db, 4242, r1.ID), ErrUserNotFound)
}

func TestPermissionGrantsAndRevocations(t *testing.T) {
	db := dbtest.New(t)

	p1 := dbtest.Permission(t, db, "p1", true)
	p2 := dbtest.Permission(t, db, "p2", true)
	u := dbtest.User(t, db, "alice", nil, nil, nil)

	tests := []struct {
		name        string
		action      func() error
		wantDirect  []uint
		wantRevoked []uint
	}{
		{
			name:       "grant",
			action:     func() error { return GrantPermissions(db, u.ID, []uint{p1.ID, p2.ID}) },
			wantDirect: []uint{p1.ID, p2.ID},
		},
		{
			name:       "remove direct grant",
			action:     func() error { return RemovePermission(db, u.ID, p2.ID) },
			wantDirect: []uint{p1.ID},
		},
		{
			name:        "revoke",
			action:      func() error { return RevokePermissions(db, u.ID, []uint{p1.ID}) },
			wantDirect:  []uint{p1.ID},
			wantRevoked: []uint{p1.ID},
		},
		{
			name:       "restore",
			action:     func() error { return RestorePermission(db, u.ID, p1.ID) },
			wantDirect: []uint{p1.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.action())

			got, err := GetSubject(db, u.ID, 0)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.wantDirect, ids(got.Permissions, permissionID))
			assert.ElementsMatch(t, tt.wantRevoked, ids(got.RevokedPermissions, permissionID))
		})
	}

	require.ErrorIs(t, GrantPermissions(db, u.ID, []uint{p1.ID, 4242}), permission.ErrPermissionNotFound)
	require.ErrorIs(t, RevokePermissions(db, u.ID, nil), ErrNoIDs)
	require.ErrorIs(t, RestorePermission(nil, u.ID, p1.ID), ErrDBNil)
}

func TestUlbAndWardAssignments(t *testing.T) {
	db := dbtest.New(t)

	north := dbtest.Ulb(t, db, "North")
	south := dbtest.Ulb(t, db, "South")
	w1 := dbtest.Ward(t, db, "01", north.ID)
	w2 := dbtest.Ward(t, db, "02", north.ID)
	u := dbtest.User(t, db, "alice", nil, nil, nil)

	tests := []struct {
		name      string
		action    func() error
		wantUlbs  []uint
		wantWards []uint
	}{
		{
			name:     "connect ulbs",
			action:   func() error { return ConnectUlbs(db, u.ID, []uint{north.ID, south.ID}) },
			wantUlbs: []uint{north.ID, south.ID},
		},
		{
			name:     "connect twice",
			action:   func() error { return ConnectUlbs(db, u.ID, []uint{north.ID}) },
			wantUlbs: []uint{north.ID, south.ID},
		},
		{
			name:      "map wards",
			action:    func() error { return MapWards(db, u.ID, []uint{w1.ID, w2.ID}) },
			wantUlbs:  []uint{north.ID, south.ID},
			wantWards: []uint{w1.ID, w2.ID},
		},
		{
			name:      "disconnect ulb keeps wards",
			action:    func() error { return DisconnectUlb(db, u.ID, south.ID) },
			wantUlbs:  []uint{north.ID},
			wantWards: []uint{w1.ID, w2.ID},
		},
		{
			name:      "remove ward",
			action:    func() error { return RemoveWard(db, u.ID, w1.ID) },
			wantUlbs:  []uint{north.ID},
			wantWards: []uint{w2.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.action())

			got, err := GetSubject(db, u.ID, 0)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.wantUlbs, ids(got.Ulbs, ulbID))
			assert.ElementsMatch(t, tt.wantWards, ids(got.Wards, wardID))
		})
	}

	require.ErrorIs(t, ConnectUlbs(db, u.ID, []uint{4242}), ulb.ErrUlbNotFound)
	require.ErrorIs(t, ConnectUlbs(db, u.ID, nil), ErrNoIDs)
	require.ErrorIs(t, MapWards(db, u.ID, []uint{w1.ID, 4242}), ulb.ErrWardNotFound)
	require.ErrorIs(t, MapWards(db, 4242, []uint{w1.ID}), ErrUserNotFound)
	require.ErrorIs(t, DisconnectUlb(db, 4242, north.ID), ErrUserNotFound)
	require.ErrorIs(t, RemoveWard(nil, u.ID, w2.ID), ErrDBNil)
}
