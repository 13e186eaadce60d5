// Package common contains shared constants, sentinel errors and small helpers
// used by both myhealth consoles.
package common

// SessionCookieName is the cookie carrying the signed browsing-session token
// of the web console.
const SessionCookieName = "myhealth_session"

// CreateKey is the edit-session key used by create flows before the entity
// has a backend identity.
const CreateKey = "new"

// UserSettingsKey is the fixed edit-session key of the per-user settings
// singleton, which has no key on the wire.
const UserSettingsKey = "current"
