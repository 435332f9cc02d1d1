package domain

// User is the immutable identity issued into tokens. It is value data:
// safe to copy and share once returned from the credential store.
type User struct {
	ID       string
	Username string
}
