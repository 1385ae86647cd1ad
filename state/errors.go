package state

import "errors"

var (
	ErrStateNotFound  = errors.New("state not found")
	ErrNoCurrentState = errors.New("no current state")
)
