// Package client contains the client-side building blocks of the pdstore CLI.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the Client interface) for the pdstore JSON API:
//     Signup, Login, Profile, SubmitSurvey, Challenges and Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that sends the session
//     token as a bearer credential and maps HTTP status codes to sentinel
//     errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI
//     session store, an SQLite file migrated with embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrRejected. Server messages
// are carried by *APIError.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
