package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmailExists          = errors.New("email already registered")
	ErrCannotDeleteSelf     = errors.New("cannot delete your own employee record")
	ErrConfirmationRequired = errors.New("deleting an employee requires confirmation")
	ErrInvalidStatus        = errors.New("status must be Active or Inactive")
)
