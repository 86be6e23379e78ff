package domain

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTokenNotFound       = errors.New("token not found")
	ErrInitDataMissingUser = errors.New("init data missing user record")

	// ErrAccountListMismatch is fatal: the parallel input files disagree on
	// how many accounts exist, so no account can be trusted.
	ErrAccountListMismatch = errors.New("account input files have different lengths")
)
