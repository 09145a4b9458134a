package models

// Listing limits. Limit values outside the range are clamped, never rejected.
const (
	ListMinLimit     = 1
	ListMaxLimit     = 100
	ListDefaultLimit = 20
)

// SearchField names a single searchable user attribute, or all of them.
type SearchField string

const (
	SearchFieldUsername SearchField = "username"
	SearchFieldEmail    SearchField = "email"
	SearchFieldFullName SearchField = "fullName"
	SearchFieldCollege  SearchField = "college"
	SearchFieldAll      SearchField = "all"
)

// SortField names a user attribute the listing can be ordered by. The set is
// fixed; unknown values fall back to [SortFieldCreatedAt].
type SortField string

const (
	SortFieldCreatedAt SortField = "createdAt"
	SortFieldUpdatedAt SortField = "updatedAt"
	SortFieldUsername  SortField = "username"
	SortFieldEmail     SortField = "email"
	SortFieldFullName  SortField = "fullName"
)

// UserListQuery represents pagination, filtering, search, and sort criteria
// for the administrative user listing.
type UserListQuery struct {
	// Page is the 1-based page number. Values below 1 are treated as 1.
	Page int `json:"page"`

	// Limit is the page size, clamped to [ListMinLimit, ListMaxLimit].
	Limit int `json:"limit"`

	// Verified filters by email-verification state when non-nil.
	Verified *bool `json:"verified,omitempty"`

	// Active filters by the soft-delete lifecycle flag when non-nil.
	Active *bool `json:"active,omitempty"`

	// Search is an optional case-insensitive substring matched against
	// SearchIn. Empty means no search filter.
	Search string `json:"search,omitempty"`

	// SearchIn selects the attribute searched by Search. Empty or
	// [SearchFieldAll] searches username, email, full name, and college.
	SearchIn SearchField `json:"search_in,omitempty"`

	// SortBy selects the ordering attribute.
	SortBy SortField `json:"sort_by,omitempty"`

	// SortDesc orders descending when true, ascending otherwise.
	SortDesc bool `json:"sort_desc,omitempty"`

	// IncludeDeleted includes soft-deleted and deactivated accounts.
	// Admin-facing listings set this so disabled accounts can be found and
	// reactivated; end-user-facing listings must leave it false.
	IncludeDeleted bool `json:"-"`
}

// Normalize clamps Page and Limit into their legal ranges and resolves the
// default sort field. It returns a copy; the receiver is not modified.
func (q UserListQuery) Normalize() UserListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = ListDefaultLimit
	}
	if q.Limit < ListMinLimit {
		q.Limit = ListMinLimit
	}
	if q.Limit > ListMaxLimit {
		q.Limit = ListMaxLimit
	}
	switch q.SortBy {
	case SortFieldCreatedAt, SortFieldUpdatedAt, SortFieldUsername, SortFieldEmail, SortFieldFullName:
	default:
		q.SortBy = SortFieldCreatedAt
	}
	return q
}

// UserList is one page of the administrative user listing.
type UserList struct {
	// Users is the page content.
	Users []User `json:"users"`

	// Total is the number of rows matching the query across all pages.
	Total int64 `json:"total"`

	// Page and Limit echo the normalised query so the client can page on.
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
