package services

import "errors"

var (
	ErrNotAuthenticated = errors.New("services: not authenticated")
	ErrNoWatchedDate    = errors.New("services: no date selected")
)
