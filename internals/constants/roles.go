package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleUser    = "user"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess = "❌ Only teachers or admins may access %s."
	ErrOnlyAdminsCanAccess   = "❌ Only admins may access %s."
	ErrOnlyStudentsCanAccess = "❌ Only student accounts may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles     = []string{RoleUser, RoleAdmin, RoleTeacher}
	TeacherAndUp = []string{RoleTeacher, RoleAdmin}
	AdminOnly    = []string{RoleAdmin}
	StudentOnly  = []string{RoleUser}
)
