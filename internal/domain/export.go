package domain

import "time"

// ItineraryRow is a single row in a trip's itinerary export.
// It is a flat, denormalized view: one row per activity, with trip fields
// repeated on every row. A trip with no activities yields one row with zero
// values for all activity fields.
type ItineraryRow struct {
	// Trip fields, repeated for every activity on the trip.
	TripID          string
	TripDestination string
	TripStartsAt    time.Time
	TripEndsAt      time.Time
	TripConfirmed   bool

	// Activity fields; zero values when the trip has no activities.
	ActivityTitle    string
	ActivityOccursAt *time.Time
}
