package utils

import "time"

// NewReleaseWindow is how far back a release date may lie and still count as new.
const NewReleaseWindow = 30 * 24 * time.Hour

// IsNewRelease reports whether releaseDate falls inside the trailing window ending at now.
// The window is inclusive on both ends; release dates after now are never new.
func IsNewRelease(releaseDate, now time.Time) bool {
	if releaseDate.After(now) {
		return false
	}
	return !releaseDate.Before(now.Add(-NewReleaseWindow))
}
