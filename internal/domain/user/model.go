package user

// Principal is the caller identity resolved from a verified access token.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}
