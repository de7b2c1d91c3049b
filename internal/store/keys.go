package store

import "strings"

// Collection keys. These match the keys the browser client used for its
// local storage so exported snapshots stay interchangeable.
const (
	KeyAlerts      = "helper-alerts"
	KeyContacts    = "helper-contacts"
	KeyResources   = "helper-resources"
	KeyProfile     = "helper-profile"
	KeyChatHistory = "helper-chat-history"
	KeyCart        = "helper-cart"
	KeyVisited     = "helper-visited"

	// KeyDismissedAdvisories holds the ids of synced advisory alerts the
	// user deleted, so later syncs do not bring them back.
	KeyDismissedAdvisories = "helper-dismissed-advisories"
)

// DefaultSession is used when a request carries no session id.
const DefaultSession = "default"

// Keys lists every collection key.
func Keys() []string {
	return []string{
		KeyAlerts, KeyContacts, KeyResources, KeyProfile,
		KeyChatHistory, KeyCart, KeyVisited, KeyDismissedAdvisories,
	}
}

// ScopedKey namespaces a collection key by session: "<session>:<key>".
func ScopedKey(session, key string) string {
	session = strings.TrimSpace(session)
	if session == "" {
		session = DefaultSession
	}
	return session + ":" + key
}
