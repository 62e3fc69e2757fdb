package models

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Requester is the authenticated identity every catalogue call is scoped to.
type Requester struct {
	UserID   int64
	Username string
}
