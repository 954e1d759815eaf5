package models

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRecordNotFound = errors.New("record not found")
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotStaff         = errors.New("staff access required")
	ErrInvalidToken     = errors.New("invalid token")
)

var ErrValidation = errors.New("validation error")
