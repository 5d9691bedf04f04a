package schema

// CoreBookTable represents the 'core.book' table
type CoreBookTable struct {
	Table     string
	ID        string
	Title     string
	Authors   string
	CoverURL  string
	PageCount string
	CreatedAt string
}

// CoreBook is the schema definition for core.book
var CoreBook = CoreBookTable{
	Table:     "core.book",
	ID:        "id",
	Title:     "title",
	Authors:   "authors",
	CoverURL:  "coverurl",
	PageCount: "pagecount",
	CreatedAt: "createdat",
}
