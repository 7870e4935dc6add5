package model

// User is an ephemeral identity created on login or signup. There is no
// user directory: every login manufactures a fresh ID and no credential is kept.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewEphemeralUser creates the identity for one login/signup call
func NewEphemeralUser(id, username, email string) User {
	return User{ID: id, Username: username, Email: email}
}
