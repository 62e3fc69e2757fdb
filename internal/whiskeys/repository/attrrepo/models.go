package attrrepo

type ListRequest struct {
	OwnerID int64
	// AssignedOnly keeps attributes referenced by at least one whiskey.
	// The relation scan is not limited to the owner's whiskeys.
	AssignedOnly bool
}
