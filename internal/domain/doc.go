// Package domain models the records and rules of the disaster-preparedness
// companion: alerts, resource and contact directories, the assistant chat,
// the preparedness store and the weather view.
//
// # Records
//
// Alerts, resources and contacts are validated on create and update. A
// failed validation returns a *ValidationError naming the field and nothing
// is written. Alerts are prepended (newest first); resources and contacts
// are appended. The four emergency-service contacts are fixed, always listed
// first and reject edits with ErrImmutable.
//
// # Keyword Response Matcher
//
// The assistant's offline answers come from an ordered rule table. Input is
// lower-cased and the first rule, in declaration order, whose keyword occurs
// as a substring wins:
//
//	"there is a flood and a fire" → flood (declared before fire)
//	"what about volcanoes?"       → FallbackResponse
//
// Matching is pure and total over all strings.
//
// # Cart Aggregator
//
// A Cart is a keyed aggregation of catalog items. Add is cumulative,
// SetQuantity rejects values below one as a no-op, and Total is the exact
// integer-cent sum of price × quantity. Shipping is added at checkout only
// for a non-empty cart.
//
// # Weather
//
// Provider condition text is mapped onto six conditions by an ordered
// keyword table (storm, snow, rain, fog, cloudy, clear; default cloudy).
// Advisory severity is derived from the event name:
//
//	high:   warning, emergency, extreme, severe, tornado, hurricane
//	medium: watch, advisory, statement, flood
//	low:    anything else
//
// # ID Generation
//
// User-created records get random UUIDs. Alerts imported from weather
// advisories get a deterministic SHA-256 prefix of event|description so that
// repeated imports of the same advisory collapse onto one alert.
package domain
