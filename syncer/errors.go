package syncer

import "errors"

var (
	ErrAlreadySyncing = errors.New("account already has a pending sync")
	ErrNotFound       = errors.New("no sync entry for account")
	ErrBusy           = errors.New("syncer at capacity")
)
