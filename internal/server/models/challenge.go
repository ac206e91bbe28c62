package models

// Challenge is an entry of the fixed challenge catalog.
type Challenge struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MaxChallengeNameLen is the column limit of Challenge.Name.
const MaxChallengeNameLen = 100
