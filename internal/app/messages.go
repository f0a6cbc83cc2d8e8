// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body is not valid JSON.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when the request body decodes but
	// fails validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgEmailAlreadyExists is returned when a registration attempt is
	// rejected because the email is already in use.
	MsgEmailAlreadyExists = "email already exists"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any existing user record. Unknown email and
	// wrong password share one message so the response does not reveal which
	// accounts exist.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgInvalidEntryID is returned when the journal entry ID in the URL is
	// not a valid UUID.
	MsgInvalidEntryID = "invalid entry id"

	// MsgEntryNotFound is returned when a journal operation targets an entry
	// that does not exist for the current user. Entries owned by someone else
	// produce the same message.
	MsgEntryNotFound = "entry not found"

	// MsgInvalidProjectID is returned when the project ID in the URL is not
	// an integer.
	MsgInvalidProjectID = "invalid project id"

	// MsgProjectNotFound is returned when a project operation targets an ID
	// that is not in the store.
	MsgProjectNotFound = "project not found"

	// MsgProjectDeleted is returned in the success envelope of a project
	// deletion.
	MsgProjectDeleted = "project deleted"
)
