package whiskeyrepo

import "errors"

var (
	ErrNotFound         = errors.New("whiskey not found")
	ErrInvalidReference = errors.New("referenced tag or place does not exist")
)

// ReferenceError names the relation ("tags" or "places") whose id was
// rejected. It matches ErrInvalidReference.
type ReferenceError struct {
	Field string
}

func (e ReferenceError) Error() string {
	return e.Field + ": " + ErrInvalidReference.Error()
}

func (e ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference //nolint:errorlint,goerr113
}

type ListRequest struct {
	OwnerID int64
	// TagIDs keeps whiskeys sharing at least one tag with the list.
	TagIDs []int64
	// PlaceIDs keeps whiskeys sharing at least one place with the list.
	PlaceIDs []int64
}
