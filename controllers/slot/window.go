package slotController

import (
	"time"

	"github.com/jinzhu/now"
)

// Booking is open 18:00-20:00 server-local time every day.
const (
	windowOpenHour  = 18
	windowCloseHour = 20
)

// timeNow is swapped out in tests
var timeNow = time.Now

// WindowOpen reports whether slot booking is open at t
func WindowOpen(t time.Time) bool {
	h := t.Hour()
	return h >= windowOpenHour && h < windowCloseHour
}

// NextBoundary returns the next window edge after t: close of the current
// window while it is open, otherwise the next opening.
func NextBoundary(t time.Time) time.Time {
	day := now.With(t).BeginningOfDay()
	open := day.Add(windowOpenHour * time.Hour)
	close := day.Add(windowCloseHour * time.Hour)

	switch {
	case t.Before(open):
		return open
	case t.Before(close):
		return close
	default:
		return open.AddDate(0, 0, 1)
	}
}

// WindowMessage is the banner text for the countdown feed
func WindowMessage(t time.Time) string {
	switch {
	case WindowOpen(t):
		return "Booking window is LIVE! Book your slots now!"
	case t.Hour() < windowOpenHour:
		return "Book slots between 6 PM – 8 PM"
	default:
		return "Next booking window starts at 6 PM tomorrow"
	}
}
