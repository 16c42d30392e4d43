package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrStageLocked      = errors.New("builder: prerequisites for the stage are not met")
	ErrUnknownStage     = errors.New("builder: unknown stage")
	ErrIncomplete       = errors.New("builder: photo, frame and size are required")
	ErrSubmitNotReady   = errors.New("builder: submit is only available on the size stage with a size selected")
	ErrEmptyCart        = errors.New("checkout: cart is empty")
	ErrOrderPlaced      = errors.New("checkout: order already placed")
	ErrUnsupportedPhoto = errors.New("photo: please upload a JPG, PNG, or HEIC file")
	ErrPhotoTooLarge    = errors.New("photo: file is too large")
)

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

// ValidationError reports every invalid field of a submitted form at once.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
