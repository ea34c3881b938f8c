package services

import "errors"

// Sentinel errors returned by the completion/certificate core. Controllers map
// these onto HTTP statuses.
var (
	ErrNotFound       = errors.New("record not found")
	ErrNotEnrolled    = errors.New("user is not enrolled in this subject")
	ErrInvalidState   = errors.New("invalid status transition")
	ErrUnknownType    = errors.New("unknown certificate type")
	ErrIssuanceFailed = errors.New("certificate issuance failed")
)
