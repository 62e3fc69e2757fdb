package models

import "strings"

// AttributeKind distinguishes the flat, user-owned attributes of a whiskey.
type AttributeKind string

const (
	KindTag   AttributeKind = "tag"
	KindPlace AttributeKind = "place"
)

// Attribute is a Tag or a Place: a named label owned by one user.
type Attribute struct {
	ID      int64         `json:"id"`
	Kind    AttributeKind `json:"-"`
	Name    string        `json:"name"`
	OwnerID int64         `json:"-"`
}

func NewAttribute(kind AttributeKind, owner Requester, name string) (Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Attribute{}, NewValidationError("name", "This field may not be blank.")
	}

	return Attribute{
		Kind:    kind,
		Name:    name,
		OwnerID: owner.UserID,
	}, nil
}

func (a Attribute) String() string {
	return a.Name
}
