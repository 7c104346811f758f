package model

import "time"

// User roles. Role names are kept as stored by the identity provider.
const (
	RoleAdmin    = "admin"
	RoleEmpleado = "empleado"
)

// User is the local mirror of an identity-provider account. Authentication
// itself is delegated; only identity and role are kept here.
type User struct {
	ID           string     `json:"id"`
	ExternalID   string     `json:"external_id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	Role         string     `json:"role"`
	AvatarURL    string     `json:"avatar_url"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
}

// FullName joins first and last name the way the listing endpoints inline it.
func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return "Usuario"
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	default:
		return u.FirstName + " " + u.LastName
	}
}
