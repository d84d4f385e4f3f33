package auth

import "errors"

var (
	MissingTokenErr       = errors.New("missing token")
	TokenAlreadyUsedErr   = errors.New("token has already been used")
	TokenExpiredErr       = errors.New("token expired")
	InvalidTokenErr       = errors.New("invalid token")
	RefreshNotEligibleErr = errors.New("token not eligible for refresh")
)
