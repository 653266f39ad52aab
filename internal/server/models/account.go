package models

import "time"

// Role is the closed set of account categories governing authorization
// decisions. It is set at registration and only changes through an
// explicit administrative path.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleRetailer Role = "retailer"
	RoleBank     Role = "bank"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a wire value onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleVendor, RoleRetailer, RoleBank, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Account is a registered identity. Email is the unique identifier and
// is immutable after creation. HashedPassword holds the bcrypt credential
// and must never leave the server.
type Account struct {
	ID             string
	Email          string
	FullName       string
	Role           Role
	CompanyName    string
	HashedPassword string
	CreatedAt      time.Time
}
