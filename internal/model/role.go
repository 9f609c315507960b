package model

// Permission names the role-gated features of the app.
type Permission string

const (
	PermViewAllUsers     Permission = "VIEW_ALL_USERS"
	PermManageUsers      Permission = "MANAGE_USERS"
	PermViewTeam         Permission = "VIEW_TEAM"
	PermApproveTimesheet Permission = "APPROVE_TIMESHEET"
	PermManageProjects   Permission = "MANAGE_PROJECTS"
	PermManageClients    Permission = "MANAGE_CLIENTS"
	PermViewTeamEntries  Permission = "VIEW_TEAM_TIME_ENTRIES"
	PermViewAllReports   Permission = "VIEW_ALL_REPORTS"
)

// permissions maps each feature to the roles allowed to use it.
var permissions = map[Permission][]string{
	PermViewAllUsers:     {RoleAdmin},
	PermManageUsers:      {RoleAdmin},
	PermViewTeam:         {RoleAdmin, RoleManager},
	PermApproveTimesheet: {RoleAdmin, RoleManager},
	PermManageProjects:   {RoleAdmin, RoleManager},
	PermManageClients:    {RoleAdmin, RoleManager},
	PermViewTeamEntries:  {RoleAdmin, RoleManager},
	PermViewAllReports:   {RoleAdmin, RoleManager},
}

// HasPermission reports whether the user's role grants the feature.
func (u *User) HasPermission(p Permission) bool {
	if u == nil {
		return false
	}
	for _, role := range permissions[p] {
		if u.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// IsManager reports whether the user holds the MANAGER role.
func (u *User) IsManager() bool { return u != nil && u.Role == RoleManager }

// CanApprove reports whether the user may approve or reject team entries.
func (u *User) CanApprove() bool { return u.HasPermission(PermApproveTimesheet) }
