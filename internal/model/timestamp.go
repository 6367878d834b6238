package model

import "time"

// CreatedAtLayout is the human readable creation time, DD/MM/YYYY HH:MM:SS.
const CreatedAtLayout = "02/01/2006 15:04:05"

// Stamp returns both creation time representations from a single reading:
// the display string and the sortable timestamp.
func Stamp(now time.Time) (string, time.Time) {
	now = now.UTC()

	return now.Format(CreatedAtLayout), now
}
