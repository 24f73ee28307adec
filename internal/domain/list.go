package domain

// ListLimit is the fixed maximum number of records returned by a listing.
// There is no cursor; callers only ever see the most recent ListLimit rows.
const ListLimit = 100

// ListFilter narrows a record listing. A nil UserID lists across all users.
type ListFilter struct {
	UserID *int64
}
