package auth

// Permission constants checked by the HTTP layer.
const (
	// PermEmployeeAccess allows changing roles, permissions, ULBs and wards of employees.
	PermEmployeeAccess = "employee.access"
	// PermMasterAccess allows maintaining the permission, role and menu masters.
	PermMasterAccess = "master.access"
)

// Permissions lists every permission the seed creates.
func Permissions() []string {
	return []string{
		PermEmployeeAccess,
		PermMasterAccess,
	}
}
