package entity

import "errors"

var (
	ErrInvalidDocument = errors.New("entity: document is not a JSON or BSON object")
	ErrFailedToDecode  = errors.New("entity: failed to decode document")
)
