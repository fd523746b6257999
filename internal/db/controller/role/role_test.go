package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anighost1/pp-be/internal/db/controller/paging"
	"github.com/anighost1/pp-be/internal/db/controller/permission"
	"github.com/anighost1/pp-be/internal/db/dbtest"
	"github.com/anighost1/pp-be/internal/db/models"
)

func TestFirstOrCreate(t *testing.T) {
	db := dbtest.New(t)

	r, err := FirstOrCreate(db, "super-admin", nil)
	require.NoError(t, err)
	assert.True(t, r.Active)

	again, err := FirstOrCreate(db, "super-admin", nil)
	require.NoError(t, err)
	assert.Equal(t, r.ID, again.ID)

	_, err = FirstOrCreate(db, "", nil)
	require.ErrorIs(t, err, ErrRoleNameEmpty)
}

func TestGetByIDsAndAttach(t *testing.T) {
	db := dbtest.New(t)

	p := dbtest.Permission(t, db, "p", true)
	r := dbtest.Role(t, db, "r", nil)

	require.NoError(t, AttachPermissions(db, r.ID, []models.Permission{p}))
	require.NoError(t, AttachPermissions(db, r.ID, []models.Permission{p}))

	var loaded models.Role
	require.NoError(t, db.Preload("Permissions").First(&loaded, r.ID).Error)
	assert.Len(t, loaded.Permissions, 1)

	roles, err := GetByIDs(db, []uint{r.ID})
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	_, err = GetByIDs(db, []uint{r.ID, 99})
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestCreate(t *testing.T) {
	db := dbtest.New(t)

	view := dbtest.Permission(t, db, "survey.view", true)
	ulbID := uint(3)

	testCases := []struct {
		name          string
		roleName      string
		permissionIDs []uint
		expectedError error
	}{
		{name: "empty name", roleName: "  ", expectedError: ErrRoleNameEmpty},
		{name: "unknown permission", roleName: "surveyor", permissionIDs: []uint{4242}, expectedError: permission.ErrPermissionNotFound},
		{name: "created", roleName: "surveyor", permissionIDs: []uint{view.ID}},
		{name: "duplicate", roleName: "surveyor", expectedError: ErrRoleAlreadyExists},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Create(db, tc.roleName, &ulbID, tc.permissionIDs)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.True(t, r.Active)

			stored, err := GetByID(db, r.ID)
			require.NoError(t, err)
			require.Len(t, stored.Permissions, 1)
			assert.Equal(t, view.ID, stored.Permissions[0].ID)
			require.NotNil(t, stored.UlbID)
			assert.Equal(t, ulbID, *stored.UlbID)
		})
	}
}

func TestList(t *testing.T) {
	db := dbtest.New(t)

	view := dbtest.Permission(t, db, "survey.view", true)
	edit := dbtest.Permission(t, db, "survey.edit", true)
	dbtest.Role(t, db, "Surveyor", nil, view)
	editor := dbtest.Role(t, db, "survey-editor", nil, view, edit)
	dbtest.Role(t, db, "clerk", nil)

	_, err := Toggle(db, editor.ID)
	require.NoError(t, err)

	inactive := false

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "all newest first", want: []string{"clerk", "survey-editor", "Surveyor"}},
		{name: "name ignores case", filter: Filter{Name: "SURVEY"}, want: []string{"survey-editor", "Surveyor"}},
		{name: "by permission", filter: Filter{Permission: "survey.edit"}, want: []string{"survey-editor"}},
		{name: "inactive", filter: Filter{Active: &inactive}, want: []string{"survey-editor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := List(db, tt.filter, paging.Page{})
			require.NoError(t, err)

			names := make([]string, 0, len(res.Data))
			for _, r := range res.Data {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestUpdateAndToggle(t *testing.T) {
	db := dbtest.New(t)

	view := dbtest.Permission(t, db, "survey.view", true)
	edit := dbtest.Permission(t, db, "survey.edit", true)
	r := dbtest.Role(t, db, "surveyor", nil, view)
	dbtest.Role(t, db, "clerk", nil)

	updated, err := Update(db, r.ID, "field-surveyor", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "field-surveyor", updated.Name)
	require.Len(t, updated.Permissions, 1, "nil permission ids keep the permissions")

	updated, err = Update(db, r.ID, "field-surveyor", nil, []uint{edit.ID, view.ID})
	require.NoError(t, err)
	require.Len(t, updated.Permissions, 2)
	assert.Equal(t, view.ID, updated.Permissions[0].ID)

	updated, err = Update(db, r.ID, "field-surveyor", nil, []uint{})
	require.NoError(t, err)
	assert.Empty(t, updated.Permissions, "an empty list clears the permissions")

	_, err = Update(db, r.ID, "clerk", nil, nil)
	require.ErrorIs(t, err, ErrRoleAlreadyExists)

	_, err = Update(db, r.ID, "field-surveyor", nil, []uint{4242})
	require.ErrorIs(t, err, permission.ErrPermissionNotFound)

	_, err = Update(db, 4242, "ghost", nil, nil)
	require.ErrorIs(t, err, ErrRoleNotFound)

	toggled, err := Toggle(db, r.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = Toggle(db, r.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active)

	_, err = Toggle(db, 4242)
	require.ErrorIs(t, err, ErrRoleNotFound)

	_, err = GetByID(db, 4242)
	require.ErrorIs(t, err, ErrRoleNotFound)
}
