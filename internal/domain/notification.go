package domain

import "time"

// NotificationTitle is the fixed title used for every reminder.
const NotificationTitle = "Daily Quote"

// NotificationRequest is a pending notification as the gateway sees it.
//
// Two identifier families must never collide: override-driven requests are
// keyed by their quote id, so there is exactly one outstanding request per
// pinned quote, while rotation-driven requests get a fresh random identifier
// each time they are regenerated.
type NotificationRequest struct {
	// Identifier keys the request in the gateway. Quote id for
	// override-family requests, a random UUID for rotation-family ones.
	Identifier string

	// FireAt is the daily time-of-day the notification fires.
	FireAt TimeOfDay

	// Repeats marks the request as firing every day at FireAt.
	Repeats bool

	// QuoteID is the quote carried in the payload, used by the UI to
	// open the right quote on tap-through.
	QuoteID string

	// Title and Body are the visible notification content.
	Title string
	Body  string
}

// DeliveredNotification is a notification the gateway has already fired and
// that is still visible in the platform's notification list.
type DeliveredNotification struct {
	Identifier  string
	QuoteID     string
	DeliveredAt time.Time
}

// AuthorizationOptions selects which alert capabilities to request from the
// platform. Mirrors the usual alert/sound/badge triple.
type AuthorizationOptions struct {
	Alert bool
	Sound bool
	Badge bool
}
