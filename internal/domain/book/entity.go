package book

// Book captures one catalog row.
type Book struct {
	ID          int64
	Title       string
	Author      string
	IsAvailable bool
}

// Filter narrows catalog queries. Nil/empty fields are skipped; Title and
// Author match as case-insensitive substrings, ID matches exactly.
type Filter struct {
	ID     *int64
	Title  string
	Author string
}
