package domain

import "time"

// Claims is the identity embedded in a bearer token.
type Claims struct {
	Subject   string
	Login     string
	Role      string
	ExpiresAt time.Time
}

// AccessToken is returned to the caller after a successful login.
type AccessToken struct {
	Token     string
	ExpiresIn time.Duration
}
