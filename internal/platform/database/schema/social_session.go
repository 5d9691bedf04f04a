package schema

// SocialSessionTable represents the 'social.session' table
type SocialSessionTable struct {
	Table       string
	ID          string
	OwnerID     string
	GuestID     string
	StartAt     string
	EndAt       string
	Duration    string
	OwnerBookID string
	CreatedAt   string
}

// SocialSession is the schema definition for social.session
var SocialSession = SocialSessionTable{
	Table:       "social.session",
	ID:          "id",
	OwnerID:     "ownerid",
	GuestID:     "guestid",
	StartAt:     "startat",
	EndAt:       "endat",
	Duration:    "durationminutes",
	OwnerBookID: "ownerbookid",
	CreatedAt:   "createdat",
}
