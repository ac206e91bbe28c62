// Package models holds the client-side views of server resources.
package models

// Challenge is one entry of the server's challenge catalog.
type Challenge struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Profile is the signed-in user's profile as returned by GET /user.
type Profile struct {
	Name                       *string     `json:"name"`
	Location                   *string     `json:"location"`
	AgeRange                   *string     `json:"age_range"`
	InteractionPreference      *string     `json:"interaction_preference"`
	OtherInteractionPreference *string     `json:"other_interaction_preference"`
	Challenges                 []Challenge `json:"challenges"`
	Message                    string      `json:"message,omitempty"`
}

// Survey is the body of PUT /user. Nil fields are left unchanged on the server.
type Survey struct {
	Name                       *string `json:"name,omitempty"`
	Location                   *string `json:"location,omitempty"`
	AgeRange                   *string `json:"age_range,omitempty"`
	InteractionPreference      *string `json:"interaction_preference,omitempty"`
	OtherInteractionPreference *string `json:"other_interaction_preference,omitempty"`
	Challenges                 []int64 `json:"challenges"`
}
