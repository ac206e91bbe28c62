package httpapi

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const schemaCredentials = `{
  "type": "object",
  "properties": {
    "email":    { "type": "string" },
    "password": { "type": "string" }
  }
}`

const schemaSurvey = `{
  "type": "object",
  "properties": {
    "name":                         { "type": ["string", "null"] },
    "location":                     { "type": ["string", "null"] },
    "age_range":                    { "type": ["string", "null"] },
    "interaction_preference":       { "type": ["string", "null"] },
    "other_interaction_preference": { "type": ["string", "null"] },
    "challenges": {
      "type": "array",
      "items": { "type": "integer" }
    }
  },
  "required": ["challenges"]
}`

var (
	credentialsLoader = gojsonschema.NewStringLoader(schemaCredentials)
	surveyLoader      = gojsonschema.NewStringLoader(schemaSurvey)
)

// validateJSONSchema checks body against the schema and joins every
// violation into one message.
func validateJSONSchema(schemaLoader gojsonschema.JSONLoader, body []byte) error {
	loader := gojsonschema.NewBytesLoader(body)
	result, err := gojsonschema.Validate(schemaLoader, loader)
	if err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("request does not conform to schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
