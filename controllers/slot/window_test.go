package slotController

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.Local)
}

func TestWindowOpen(t *testing.T) {
	assert.False(t, WindowOpen(at(17, 59)))
	assert.True(t, WindowOpen(at(18, 0)))
	assert.True(t, WindowOpen(at(19, 30)))
	assert.False(t, WindowOpen(at(20, 0)))
	assert.False(t, WindowOpen(at(23, 0)))
	assert.False(t, WindowOpen(at(9, 0)))
}

func TestNextBoundary(t *testing.T) {
	// Before the window: counts down to today's opening
	assert.Equal(t, at(18, 0), NextBoundary(at(9, 0)))
	assert.Equal(t, at(18, 0), NextBoundary(at(17, 59)))

	// Inside the window: counts down to closing
	assert.Equal(t, at(20, 0), NextBoundary(at(18, 0)))
	assert.Equal(t, at(20, 0), NextBoundary(at(19, 59)))

	// After the window: counts down to tomorrow's opening
	assert.Equal(t, at(18, 0).AddDate(0, 0, 1), NextBoundary(at(20, 0)))
	assert.Equal(t, at(18, 0).AddDate(0, 0, 1), NextBoundary(at(23, 30)))
}

func TestWindowMessage(t *testing.T) {
	assert.Equal(t, "Book slots between 6 PM – 8 PM", WindowMessage(at(10, 0)))
	assert.Equal(t, "Booking window is LIVE! Book your slots now!", WindowMessage(at(18, 30)))
	assert.Equal(t, "Next booking window starts at 6 PM tomorrow", WindowMessage(at(21, 0)))
}
