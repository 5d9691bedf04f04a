package schema

// LibraryEntryTable represents the 'library.entry' table
type LibraryEntryTable struct {
	Table          string
	UserID         string
	BookID         string
	AddedAt        string
	TotalReadTime  string
	AutoProgress   string
	ManualProgress string
	UpdatedAt      string
}

// LibraryEntry is the schema definition for library.entry
var LibraryEntry = LibraryEntryTable{
	Table:          "library.entry",
	UserID:         "userid",
	BookID:         "bookid",
	AddedAt:        "addedat",
	TotalReadTime:  "totalreadtime",
	AutoProgress:   "autoprogress",
	ManualProgress: "manualprogress",
	UpdatedAt:      "updatedat",
}
