package usecase

import "github.com/zeebo/errs"

// Pipeline failure classes. Everything up to and including the commit aborts
// the session; later stages are advisory and only ever logged.
var (
	ErrUnauthorized = errs.Class("authorization failure")
	ErrValidation   = errs.Class("validation failure")
	ErrPublish      = errs.Class("publish failure")
	ErrCommit       = errs.Class("commit failure")
)
