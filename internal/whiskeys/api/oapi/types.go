// Package oapi provides primitives to interact with the openapi HTTP API.
package oapi

// Credentials defines model for Credentials.
type Credentials struct {
	Password *string `json:"password,omitempty"`
	Username *string `json:"username,omitempty"`
}

// AttributeCreate defines model for AttributeCreate.
type AttributeCreate struct {
	Name *string `json:"name,omitempty"`
}

// WhiskeyWrite defines model for WhiskeyWrite.
type WhiskeyWrite struct {
	Brand  *string  `json:"brand,omitempty"`
	Style  *string  `json:"style,omitempty"`
	Year   *int     `json:"year,omitempty"`
	Price  *float64 `json:"price,omitempty"`
	Link   *string  `json:"link,omitempty"`
	Tags   *[]int64 `json:"tags,omitempty"`
	Places *[]int64 `json:"places,omitempty"`
}

// PostUserJSONBody defines parameters for PostUser.
type PostUserJSONBody = Credentials

// PostAuthJSONBody defines parameters for PostAuth.
type PostAuthJSONBody = Credentials

// PostTagsJSONBody defines parameters for PostTags.
type PostTagsJSONBody = AttributeCreate

// PostPlacesJSONBody defines parameters for PostPlaces.
type PostPlacesJSONBody = AttributeCreate

// PostWhiskeysJSONBody defines parameters for PostWhiskeys.
type PostWhiskeysJSONBody = WhiskeyWrite

// PutWhiskeysIdJSONBody defines parameters for PutWhiskeysId.
type PutWhiskeysIdJSONBody = WhiskeyWrite //nolint:revive,stylecheck

// PatchWhiskeysIdJSONBody defines parameters for PatchWhiskeysId.
type PatchWhiskeysIdJSONBody = WhiskeyWrite //nolint:revive,stylecheck

// DeleteAuthParams defines parameters for DeleteAuth.
type DeleteAuthParams struct {
	Authorization *string `json:"Authorization,omitempty"`
}

// GetTagsParams defines parameters for GetTags.
type GetTagsParams struct {
	// AssignedOnly keeps only tags assigned to a whiskey.
	AssignedOnly *string `form:"assigned_only,omitempty" json:"assigned_only,omitempty"` //nolint:tagliatelle

	Authorization *string `json:"Authorization,omitempty"`
}

// PostTagsParams defines parameters for PostTags.
type PostTagsParams struct {
	Authorization *string `json:"Authorization,omitempty"`
}

// GetPlacesParams defines parameters for GetPlaces.
type GetPlacesParams struct {
	// AssignedOnly keeps only places assigned to a whiskey.
	AssignedOnly *string `form:"assigned_only,omitempty" json:"assigned_only,omitempty"` //nolint:tagliatelle

	Authorization *string `json:"Authorization,omitempty"`
}

// PostPlacesParams defines parameters for PostPlaces.
type PostPlacesParams struct {
	Authorization *string `json:"Authorization,omitempty"`
}

// GetWhiskeysParams defines parameters for GetWhiskeys.
type GetWhiskeysParams struct {
	// Tags comma separated tag ids.
	Tags *string `form:"tags,omitempty" json:"tags,omitempty"`

	// Places comma separated place ids.
	Places *string `form:"places,omitempty" json:"places,omitempty"`

	Authorization *string `json:"Authorization,omitempty"`
}

// PostWhiskeysParams defines parameters for PostWhiskeys.
type PostWhiskeysParams struct {
	Authorization *string `json:"Authorization,omitempty"`
}

// GetWhiskeysIdParams defines parameters for GetWhiskeysId.
type GetWhiskeysIdParams struct { //nolint:revive,stylecheck
	Authorization *string `json:"Authorization,omitempty"`
}

// PutWhiskeysIdParams defines parameters for PutWhiskeysId.
type PutWhiskeysIdParams struct { //nolint:revive,stylecheck
	Authorization *string `json:"Authorization,omitempty"`
}

// PatchWhiskeysIdParams defines parameters for PatchWhiskeysId.
type PatchWhiskeysIdParams struct { //nolint:revive,stylecheck
	Authorization *string `json:"Authorization,omitempty"`
}

// PostWhiskeysIdUploadImageParams defines parameters for PostWhiskeysIdUploadImage.
type PostWhiskeysIdUploadImageParams struct { //nolint:revive,stylecheck
	Authorization *string `json:"Authorization,omitempty"`
}
