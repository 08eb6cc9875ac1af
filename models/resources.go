// ABOUTME: Resource models for users, roles, and permission assignments
// ABOUTME: Mirrors the identity backend's REST payload shapes

package models

// User represents a managed account on the identity backend
type User struct {
	ID                   string  `json:"id"`
	UserName             string  `json:"userName"`
	Email                string  `json:"email"`
	EmailConfirmed       bool    `json:"emailConfirmed"`
	PhoneNumber          string  `json:"phoneNumber"`
	PhoneNumberConfirmed bool    `json:"phoneNumberConfirmed"`
	TwoFactorEnabled     bool    `json:"twoFactorEnabled"`
	LockoutEnd           *string `json:"lockoutEnd"`
}

// UsersResponse is the collection envelope some deployments return for /users
type UsersResponse struct {
	Users []User   `json:"users"`
	Error []string `json:"error"`
}

// Role represents a role on the identity backend
type Role struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	NormalizedName   string  `json:"normalizedName"`
	ConcurrencyStamp *string `json:"concurrencyStamp"`
}

// RolesResponse is the collection envelope some deployments return for /roles
type RolesResponse struct {
	Roles []Role   `json:"roles"`
	Error []string `json:"error"`
}

// Permission is a single grantable permission key
type Permission struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Screen groups permissions belonging to one backend screen
type Screen struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Permissions []Permission `json:"permissions"`
}

// PermissionCategory is the top level of the permission catalog tree
type PermissionCategory struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Screens []Screen `json:"screens"`
}

// PermissionsResponse is the catalog envelope returned by /permissions
type PermissionsResponse struct {
	Categories []PermissionCategory `json:"categories"`
}

// AssignPermissionsRequest replaces a role's permission set
type AssignPermissionsRequest struct {
	RoleName    string   `json:"roleName"`
	Permissions []string `json:"permissions"`
}
