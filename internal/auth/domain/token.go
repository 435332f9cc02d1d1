package domain

// LoginResult is the complete outcome of a successful login: both tokens
// plus the identity they were minted for. Login either returns all of this
// or fails entirely.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         User
}
