package group

import "time"

type Role string

const (
	RoleCommissioner Role = "commissioner"
	RoleMember       Role = "member"
)

type Group struct {
	ID          string
	Name        string
	OwnerUserID string
	InviteCode  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Membership struct {
	GroupID   string
	UserID    string
	Role      Role
	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCommissioner reports whether userID may grade picks in the group.
func IsCommissioner(g Group, m *Membership, userID string) bool {
	if userID == "" {
		return false
	}
	if g.OwnerUserID == userID {
		return true
	}
	return m != nil && m.UserID == userID && m.Role == RoleCommissioner
}
