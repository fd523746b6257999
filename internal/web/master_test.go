package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anighost1/pp-be/internal/auth"
	"github.com/anighost1/pp-be/internal/db/controller/paging"
	"github.com/anighost1/pp-be/internal/db/dbtest"
	"github.com/anighost1/pp-be/internal/db/models"
)

const masterPath = "/api/panel/master"

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))

	return out
}

func names(perms []models.Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, p.Name)
	}

	return out
}

func TestMasterRequiresPermission(t *testing.T) {
	env := newTestEnv(t)
	manager := env.login("manager").Token

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "no token", method: http.MethodGet, path: "/permission", want: http.StatusUnauthorized},
		{name: "list permissions", method: http.MethodGet, path: "/permission", token: manager, want: http.StatusForbidden},
		{name: "create role", method: http.MethodPost, path: "/role", token: manager, want: http.StatusForbidden},
		{name: "toggle menu", method: http.MethodPut, path: "/menu/toggle", token: manager, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := env.do(tt.method, masterPath+tt.path, tt.token, nil)
			assert.Equal(t, tt.want, status)
			assert.False(t, res.Success)
		})
	}
}

func TestMasterPermissions(t *testing.T) {
	env := newTestEnv(t)
	token := env.login("admin").Token

	status, res := env.do(http.MethodPost, masterPath+"/permission", token, map[string]any{
		"permission_names": []string{"report.view", " report.export "},
	})
	require.Equal(t, http.StatusOK, status, res.Message)
	created := decode[[]models.Permission](t, res.Data)
	assert.Equal(t, []string{"report.view", "report.export"}, names(created))

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{name: "duplicate", method: http.MethodPost, path: "/permission", body: map[string]any{"permission_names": []string{"survey.view"}}, wantStatus: http.StatusConflict},
		{name: "no names", method: http.MethodPost, path: "/permission", body: map[string]any{"permission_names": []string{}}, wantStatus: http.StatusBadRequest},
		{name: "by-id without id", method: http.MethodGet, path: "/permission/by-id", wantStatus: http.StatusBadRequest},
		{name: "by-id unknown", method: http.MethodGet, path: "/permission/by-id?id=4242", wantStatus: http.StatusNotFound},
		{name: "rename onto taken name", method: http.MethodPut, path: "/permission", body: map[string]any{"id": created[0].ID, "name": "survey.edit"}, wantStatus: http.StatusConflict},
		{name: "toggle unknown", method: http.MethodPut, path: "/permission/toggle", body: map[string]any{"id": 4242}, wantStatus: http.StatusNotFound},
		{name: "invalid active filter", method: http.MethodGet, path: "/permission?active=maybe", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := env.do(tt.method, masterPath+tt.path, token, tt.body)
			assert.Equal(t, tt.wantStatus, status, res.Message)
			assert.False(t, res.Success)
		})
	}

	status, res = env.do(http.MethodPut, masterPath+"/permission", token, map[string]any{
		"id":   created[0].ID,
		"name": "report.read",
	})
	require.Equal(t, http.StatusOK, status, res.Message)
	assert.Equal(t, "report.read", decode[models.Permission](t, res.Data).Name)

	status, res = env.do(http.MethodPut, masterPath+"/permission/toggle", token, map[string]any{"id": created[1].ID})
	require.Equal(t, http.StatusOK, status, res.Message)
	assert.Equal(t, "Permission toggled to inactive successfully", res.Message)

	status, res = env.do(http.MethodGet, masterPath+"/permission?name=REPORT&active=true", token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
	page := decode[paging.Result[models.Permission]](t, res.Data)
	assert.Equal(t, []string{"report.read"}, names(page.Data))
	assert.Equal(t, int64(1), page.Pagination.Total)

	status, res = env.do(http.MethodGet, masterPath+"/permission/by-id?id="+itoa(env.perms["survey.view"].ID), token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
	byID := decode[models.Permission](t, res.Data)
	require.Len(t, byID.Menus, 1)
	assert.Equal(t, "Survey", byID.Menus[0].Label)
}

func TestMasterToggledPermissionLeavesCatalog(t *testing.T) {
	env := newTestEnv(t)
	token := env.login("admin").Token

	status, res := env.do(http.MethodPut, masterPath+"/permission/toggle", token, map[string]any{
		"id": env.perms["survey.edit"].ID,
	})
	require.Equal(t, http.StatusOK, status, res.Message)

	admin := env.login("admin")
	got := make([]string, 0, len(admin.Permissions))
	for _, p := range admin.Permissions {
		got = append(got, p.Name)
	}
	assert.ElementsMatch(t, []string{auth.PermEmployeeAccess, "survey.view"}, got)
}

func TestMasterRoles(t *testing.T) {
	env := newTestEnv(t)
	token := env.login("admin").Token
	view := env.perms["survey.view"].ID
	edit := env.perms["survey.edit"].ID

	status, res := env.do(http.MethodPost, masterPath+"/role", token, map[string]any{
		"name":        "surveyor",
		"permissions": []uint{view, edit},
	})
	require.Equal(t, http.StatusOK, status, res.Message)
	surveyor := decode[models.Role](t, res.Data)
	assert.Equal(t, []string{"survey.view", "survey.edit"}, names(surveyor.Permissions))

	steps := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantPerms  []string
	}{
		{
			name:       "duplicate name",
			method:     http.MethodPost,
			path:       "/role",
			body:       map[string]any{"name": "manager"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown permission",
			method:     http.MethodPost,
			path:       "/role",
			body:       map[string]any{"name": "auditor", "permissions": []uint{4242}},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "rename keeps permissions",
			method:     http.MethodPut,
			path:       "/role",
			body:       map[string]any{"id": surveyor.ID, "name": "field-surveyor"},
			wantStatus: http.StatusOK,
			wantPerms:  []string{"survey.view", "survey.edit"},
		},
		{
			name:       "replace permissions",
			method:     http.MethodPut,
			path:       "/role",
			body:       map[string]any{"id": surveyor.ID, "name": "field-surveyor", "permissions": []uint{edit}},
			wantStatus: http.StatusOK,
			wantPerms:  []string{"survey.edit"},
		},
		{
			name:       "empty list clears permissions",
			method:     http.MethodPut,
			path:       "/role",
			body:       map[string]any{"id": surveyor.ID, "name": "field-surveyor", "permissions": []uint{}},
			wantStatus: http.StatusOK,
			wantPerms:  []string{},
		},
		{
			name:       "update unknown",
			method:     http.MethodPut,
			path:       "/role",
			body:       map[string]any{"id": 4242, "name": "ghost"},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			status, res := env.do(step.method, masterPath+step.path, token, step.body)
			require.Equal(t, step.wantStatus, status, res.Message)

			if step.wantPerms != nil {
				assert.Equal(t, step.wantPerms, names(decode[models.Role](t, res.Data).Permissions))
			}
		})
	}

	status, res = env.do(http.MethodGet, masterPath+"/role?permission=survey.view", token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
	page := decode[paging.Result[models.Role]](t, res.Data)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "manager", page.Data[0].Name)

	status, res = env.do(http.MethodPut, masterPath+"/role/toggle", token, map[string]any{"id": surveyor.ID})
	require.Equal(t, http.StatusOK, status, res.Message)
	assert.False(t, decode[models.Role](t, res.Data).Active)

	status, res = env.do(http.MethodGet, masterPath+"/role/by-id?id="+itoa(surveyor.ID), token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
	assert.Equal(t, "field-surveyor", decode[models.Role](t, res.Data).Name)
}

func TestMasterMenus(t *testing.T) {
	env := newTestEnv(t)
	token := env.login("admin").Token

	status, res := env.do(http.MethodPost, masterPath+"/menu", token, map[string]any{
		"label":       "Reports",
		"path":        "/reports",
		"order":       3,
		"permissions": []string{"survey.view"},
	})
	require.Equal(t, http.StatusOK, status, res.Message)
	reports := decode[models.Menu](t, res.Data)
	assert.True(t, reports.Active)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{name: "missing label", method: http.MethodPost, path: "/menu", body: map[string]any{"path": "/x"}, wantStatus: http.StatusBadRequest},
		{name: "unknown permission", method: http.MethodPost, path: "/menu", body: map[string]any{"label": "X", "permissions": []string{"nope"}}, wantStatus: http.StatusNotFound},
		{name: "self parent", method: http.MethodPut, path: "/menu", body: map[string]any{"id": reports.ID, "label": "Reports", "parentId": reports.ID}, wantStatus: http.StatusBadRequest},
		{name: "update unknown", method: http.MethodPut, path: "/menu", body: map[string]any{"id": 4242, "label": "Ghost"}, wantStatus: http.StatusNotFound},
		{name: "by-id unknown", method: http.MethodGet, path: "/menu/by-id?id=4242", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := env.do(tt.method, masterPath+tt.path, token, tt.body)
			assert.Equal(t, tt.wantStatus, status, res.Message)
		})
	}

	status, res = env.do(http.MethodPut, masterPath+"/menu", token, map[string]any{
		"id":          reports.ID,
		"label":       "Reports",
		"path":        "/reports/all",
		"order":       1,
		"permissions": []string{"survey.edit"},
	})
	require.Equal(t, http.StatusOK, status, res.Message)
	updated := decode[models.Menu](t, res.Data)
	assert.Equal(t, "/reports/all", updated.Path)
	assert.Equal(t, []string{"survey.edit"}, names(updated.Permissions))

	status, res = env.do(http.MethodPut, masterPath+"/menu/toggle", token, map[string]any{"id": reports.ID})
	require.Equal(t, http.StatusOK, status, res.Message)
	assert.Equal(t, "Menu toggled to inactive successfully", res.Message)

	status, res = env.do(http.MethodGet, masterPath+"/menu?label=rep&active=false", token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)
	page := decode[paging.Result[models.Menu]](t, res.Data)
	require.Len(t, page.Data, 1)
	assert.Equal(t, reports.ID, page.Data[0].ID)
}

func TestEmployeeUlbAndWardReachToken(t *testing.T) {
	env := newTestEnv(t)
	managerToken := env.login("manager").Token
	clerkID := env.users["clerk"].ID

	db := env.deps.DB
	north := dbtest.Ulb(t, db, "North")
	south := dbtest.Ulb(t, db, "South")
	ward := dbtest.Ward(t, db, "12", north.ID)

	steps := []struct {
		name       string
		path       string
		body       map[string]any
		wantStatus int
	}{
		{name: "connect ulbs", path: "/connect-ulb", body: map[string]any{"user_id": clerkID, "ulbs": []uint{north.ID, south.ID}}, wantStatus: http.StatusOK},
		{name: "disconnect ulb", path: "/disconnect-ulb", body: map[string]any{"user_id": clerkID, "ulb": south.ID}, wantStatus: http.StatusOK},
		{name: "map wards", path: "/map-wards", body: map[string]any{"user_id": clerkID, "wards": []uint{ward.ID}}, wantStatus: http.StatusOK},
		{name: "unknown ulb", path: "/connect-ulb", body: map[string]any{"user_id": clerkID, "ulbs": []uint{4242}}, wantStatus: http.StatusNotFound},
		{name: "unknown ward", path: "/map-wards", body: map[string]any{"user_id": clerkID, "wards": []uint{4242}}, wantStatus: http.StatusNotFound},
		{name: "unknown user", path: "/remove-ward", body: map[string]any{"user_id": 4242, "ward": ward.ID}, wantStatus: http.StatusNotFound},
		{name: "missing ward", path: "/remove-ward", body: map[string]any{"user_id": clerkID}, wantStatus: http.StatusBadRequest},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			status, res := env.do(http.MethodPut, "/api/panel/employee"+step.path, managerToken, step.body)
			require.Equal(t, step.wantStatus, status, res.Message)
			assert.Equal(t, step.wantStatus == http.StatusOK, res.Success)
		})
	}

	claims, err := env.deps.Tokens.Parse(env.login("clerk").Token)
	require.NoError(t, err)
	assert.Equal(t, []auth.ClaimUlb{{ID: north.ID, Name: "North"}}, claims.Ulbs)
	assert.Equal(t, []auth.ClaimWard{{ID: ward.ID, WardNo: "12"}}, claims.Wards)

	status, res := env.do(http.MethodPut, "/api/panel/employee/remove-ward", managerToken, map[string]any{
		"user_id": clerkID,
		"ward":    ward.ID,
	})
	require.Equal(t, http.StatusOK, status, res.Message)

	claims, err = env.deps.Tokens.Parse(env.login("clerk").Token)
	require.NoError(t, err)
	assert.Empty(t, claims.Wards)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
