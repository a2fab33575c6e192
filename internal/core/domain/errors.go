package domain

import "errors"

var (
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
	ErrWeakPassword = errors.New("password must be 8-16 characters with one uppercase letter and one special character")

	ErrStoreExists   = errors.New("store already exists")
	ErrStoreNotFound = errors.New("store not found")
	ErrInvalidOwner  = errors.New("owner must be an existing store owner")
	ErrNoStoreOwned  = errors.New("you do not own any store")

	ErrInvalidScore = errors.New("rating must be between 1 and 5")
	// ErrRatingNotFound covers both "rating does not exist" and "rating is
	// owned by someone else" so mutation failures never leak existence.
	ErrRatingNotFound = errors.New("rating not found or unauthorized")
)
