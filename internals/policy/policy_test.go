package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sciedu_backend/internals/constants"
)

func TestIsAllowedUnauthenticated(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/about", true},
		{"/about/team", true},
		{"/contact", true},
		{"/features", true},
		{"/login", true},
		{"/register", true},
		{"/unauthorized", true},
		{"/api/auth/login", true},
		{"/dashboard/teacher", false},
		{"/dashboard/student", false},
		{"/dashboard/admin", false},
		{"/assignments", false},
		{"/some/random/page", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAllowed(tt.path, ""), "path=%s", tt.path)
	}
}

// Root cuma match exact — prefix match "/" bakal meloloskan semua path.
func TestIsPublicPathRootIsExact(t *testing.T) {
	assert.True(t, IsPublicPath("/"))
	assert.True(t, IsPublicPath("/about/team"))
	assert.False(t, IsPublicPath("/x"))
	assert.False(t, IsPublicPath("/dashboard/teacher"))
	assert.False(t, IsPublicPath("/settings"))
}

func TestIsAllowedRestrictedPrefixes(t *testing.T) {
	teacherPaths := []string{
		"/dashboard/teacher",
		"/assignments/create",
		"/assignments/edit/abc",
		"/questions/create",
		"/questions/edit/42",
		"/classes/manage",
		"/students/progress",
	}
	studentPaths := []string{
		"/dashboard/student",
		"/assignments/take/abc",
		"/assignments/results",
		"/progress",
	}
	adminPaths := []string{
		"/dashboard/admin",
		"/admin/teachers",
	}

	for _, p := range teacherPaths {
		assert.True(t, IsAllowed(p, constants.RoleTeacher), "teacher should access %s", p)
		assert.False(t, IsAllowed(p, constants.RoleStudent), "student must not access %s", p)
		assert.False(t, IsAllowed(p, constants.RoleAdmin), "admin must not access %s", p)
		assert.False(t, IsAllowed(p, ""), "guest must not access %s", p)
	}
	for _, p := range studentPaths {
		assert.True(t, IsAllowed(p, constants.RoleStudent), "student should access %s", p)
		assert.False(t, IsAllowed(p, constants.RoleTeacher), "teacher must not access %s", p)
		assert.False(t, IsAllowed(p, constants.RoleAdmin), "admin must not access %s", p)
		assert.False(t, IsAllowed(p, ""), "guest must not access %s", p)
	}
	for _, p := range adminPaths {
		assert.True(t, IsAllowed(p, constants.RoleAdmin), "admin should access %s", p)
		assert.False(t, IsAllowed(p, constants.RoleTeacher), "teacher must not access %s", p)
		assert.False(t, IsAllowed(p, constants.RoleStudent), "student must not access %s", p)
		assert.False(t, IsAllowed(p, ""), "guest must not access %s", p)
	}
}

// Path terproteksi yang tidak match prefix manapun: default-allow untuk
// semua role yang sudah login.
func TestIsAllowedDefaultAllowForAuthenticated(t *testing.T) {
	for _, role := range constants.AllRoles {
		assert.True(t, IsAllowed("/settings", role))
		assert.True(t, IsAllowed("/some/random/page", role))
	}
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/dashboard/teacher", LandingPath(constants.RoleTeacher))
	assert.Equal(t, "/dashboard/student", LandingPath(constants.RoleStudent))
	assert.Equal(t, "/dashboard/admin", LandingPath(constants.RoleAdmin))
	assert.Equal(t, "/", LandingPath(""))
	assert.Equal(t, "/", LandingPath("SOMETHING_ELSE"))
}

func TestIsGuestOnly(t *testing.T) {
	assert.True(t, IsGuestOnly("/login"))
	assert.True(t, IsGuestOnly("/register"))
	assert.True(t, IsGuestOnly("/auth/forgot-password"))
	assert.False(t, IsGuestOnly("/"))
	assert.False(t, IsGuestOnly("/dashboard/teacher"))
}
