package whiskeyservice

type ListRequest struct {
	Tags   []int64
	Places []int64
}

// CreateRequest is the complete writable state of a whiskey.
type CreateRequest struct {
	Brand  string   `json:"brand"  validate:"required,max=255"`
	Style  string   `json:"style"  validate:"required,max=255"`
	Year   *int     `json:"year"   validate:"omitempty,gte=0,lte=9999"`
	Price  *float64 `json:"price"  validate:"omitempty,gte=0,lte=999999.99"`
	Link   string   `json:"link"   validate:"max=255"`
	Tags   []int64  `json:"tags"`
	Places []int64  `json:"places"`
}

// UpdateRequest holds the supplied fields of an update; nil means the
// field was not sent.
type UpdateRequest struct {
	Brand  *string  `json:"brand"`
	Style  *string  `json:"style"`
	Year   *int     `json:"year"`
	Price  *float64 `json:"price"`
	Link   *string  `json:"link"`
	Tags   *[]int64 `json:"tags"`
	Places *[]int64 `json:"places"`
}
