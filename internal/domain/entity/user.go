package entity

// Authorization roles. A user document without a role field is a plain
// member.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User is the typed view of a user document for role decisions. Profile
// fields stay in the underlying document.
type User struct {
	ID    string
	Email string
	Role  string
}

func UserFromDocument(d Document) User {
	role := d.GetString(FieldRole)
	if role == "" {
		role = RoleMember
	}
	return User{
		ID:    d.ID,
		Email: d.GetString(FieldEmail),
		Role:  role,
	}
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
