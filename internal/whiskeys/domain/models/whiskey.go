package models

import "strings"

type Whiskey struct {
	ID       int64
	Brand    string
	Style    string
	Year     *int
	Price    *float64
	Link     string
	Image    string
	OwnerID  int64
	TagIDs   []int64
	PlaceIDs []int64
}

// WhiskeyDetail is a whiskey with its relations resolved.
type WhiskeyDetail struct {
	Whiskey
	Tags   []Attribute
	Places []Attribute
}

func NewWhiskey(owner Requester, brand, style string) (Whiskey, error) {
	var verr ValidationError

	brand = strings.TrimSpace(brand)
	if brand == "" {
		verr = verr.With("brand", "This field may not be blank.")
	}

	style = strings.TrimSpace(style)
	if style == "" {
		verr = verr.With("style", "This field may not be blank.")
	}

	if len(verr.Fields) != 0 {
		return Whiskey{}, verr
	}

	return Whiskey{
		Brand:    brand,
		Style:    style,
		OwnerID:  owner.UserID,
		TagIDs:   []int64{},
		PlaceIDs: []int64{},
	}, nil
}

func (w Whiskey) String() string {
	return w.Brand
}
