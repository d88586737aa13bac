package models

// User is the mock-authenticated dashboard user.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}
