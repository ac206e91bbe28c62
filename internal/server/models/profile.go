package models

// ProfileView is what a user sees of their own profile: the scalar
// survey answers and the selected challenges ordered by id.
// Challenges is never nil.
type ProfileView struct {
	UserID     string
	Email      string
	Fields     ProfileFields
	Challenges []Challenge
}
