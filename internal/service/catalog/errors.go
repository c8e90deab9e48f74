package catalog

import "errors"

var (
	ErrUnknownKind       = errors.New("unknown reference kind")
	ErrReferenceNotFound = errors.New("reference not found")
)
