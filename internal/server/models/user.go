// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account together with its survey profile. The profile
// columns stay NULL until the first survey submission.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Profile      ProfileFields
	CreatedAt    time.Time
}

// ProfileFields holds the scalar survey answers of a user.
// A nil field means "not set" on read and "keep stored value" on write.
type ProfileFields struct {
	Name                       *string
	Location                   *string
	AgeRange                   *string
	InteractionPreference      *string
	OtherInteractionPreference *string
}

// Column limits of the profile fields, in characters.
const (
	MaxEmailLen                 = 255
	MaxNameLen                  = 255
	MaxLocationLen              = 255
	MaxAgeRangeLen              = 50
	MaxInteractionPreferenceLen = 50
	MaxOtherPreferenceLen       = 255
)
