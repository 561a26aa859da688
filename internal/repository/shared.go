package repository

// Pagination holds 1-based pagination parameters for listing entities.
type Pagination struct {
	PageNo   int
	PageSize int
}

// Offset converts the page number into a record offset.
func (p Pagination) Offset() int {
	if p.PageNo < 1 {
		return 0
	}
	return (p.PageNo - 1) * p.PageSize
}

// Normalize applies defaults for unset pagination values.
func (p *Pagination) Normalize(defaultSize int) {
	if p.PageNo < 1 {
		p.PageNo = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
}

// Sort fields accepted by the cycle vocabulary and dictionary listings.
// The server owns sorting; these are the only keys it honours.
const (
	SortByWordID = "word_id"
	SortByWord   = "word"
	SortByLevel  = "level"
)

// Sorting selects the server-side ordering of a listing.
type Sorting struct {
	By   string
	Desc bool
}
