package attrservice

type ListRequest struct {
	AssignedOnly bool
}

type CreateRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}
