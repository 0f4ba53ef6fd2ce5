// file: internals/policy/policy.go
//
// Evaluator akses berbasis prefix path + role. Murni fungsi (tanpa state),
// dipakai middleware page-guard dan bisa diuji terpisah.
package policy

import (
	"strings"

	"sciedu_backend/internals/constants"
)

// Halaman publik — boleh diakses tanpa login
var publicPaths = []string{
	"/",
	"/about",
	"/contact",
	"/features",
	"/api/auth",
	"/login",
	"/register",
	"/unauthorized",
}

// Prefix khusus guru
var teacherPrefixes = []string{
	"/dashboard/teacher",
	"/assignments/create",
	"/assignments/edit",
	"/questions/create",
	"/questions/edit",
	"/classes/manage",
	"/students/progress",
}

// Prefix khusus siswa
var studentPrefixes = []string{
	"/dashboard/student",
	"/assignments/take",
	"/assignments/results",
	"/progress",
}

// Prefix khusus admin
var adminPrefixes = []string{
	"/dashboard/admin",
	"/admin/",
}

const (
	HomePath             = "/"
	UnauthorizedPath     = "/unauthorized"
	TeacherDashboardPath = "/dashboard/teacher"
	StudentDashboardPath = "/dashboard/student"
	AdminDashboardPath   = "/dashboard/admin"
)

func hasPrefixAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// IsPublicPath: root harus exact match (kalau pakai prefix, "/" meloloskan
// semua path), sisanya prefix match.
func IsPublicPath(path string) bool {
	for _, p := range publicPaths {
		if p == HomePath {
			if path == HomePath {
				return true
			}
			continue
		}
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// IsGuestOnly: halaman auth yang hanya relevan untuk user belum login
func IsGuestOnly(path string) bool {
	return path == "/login" || path == "/register" || strings.HasPrefix(path, "/auth/")
}

// IsAllowed memutuskan akses untuk (path, role). role == "" artinya belum login.
//
// Path yang tidak cocok prefix terproteksi manapun boleh diakses semua role
// yang sudah login (default-allow, behavior dipertahankan apa adanya).
func IsAllowed(path, role string) bool {
	if role == "" {
		return IsPublicPath(path)
	}

	if hasPrefixAny(path, teacherPrefixes) {
		return role == constants.RoleTeacher
	}
	if hasPrefixAny(path, studentPrefixes) {
		return role == constants.RoleStudent
	}
	if hasPrefixAny(path, adminPrefixes) {
		return role == constants.RoleAdmin
	}

	return true
}

// LandingPath: halaman tujuan setelah login per role
func LandingPath(role string) string {
	switch role {
	case constants.RoleTeacher:
		return TeacherDashboardPath
	case constants.RoleStudent:
		return StudentDashboardPath
	case constants.RoleAdmin:
		return AdminDashboardPath
	default:
		return HomePath
	}
}
