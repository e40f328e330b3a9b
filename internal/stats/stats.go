// Package stats derives aggregate figures from the ordered entry log.
package stats

import (
	"math"
	"time"

	"github.com/iliyamo/entry-exit-logbook/internal/model"
)

// Stats is the JSON body of GET /api/stats.
type Stats struct {
	TotalEntries int     `json:"total_entries"`
	TotalExits   int     `json:"total_exits"`
	TotalHours   float64 `json:"total_hours"`
}

// Compute folds entries in stored order.  Only the most recent unmatched
// entry can pair with a following exit: a newer entry replaces it, an exit
// with nothing pending is ignored, and an entry still pending at the end
// contributes nothing.  Counts are independent of pairing.
func Compute(entries []model.Entry) Stats {
	var (
		out     Stats
		total   time.Duration
		pending *time.Time
	)
	for _, e := range entries {
		switch e.Type {
		case model.TypeEntry:
			out.TotalEntries++
			t := e.Timestamp.Time
			pending = &t
		case model.TypeExit:
			out.TotalExits++
			if pending != nil {
				total += e.Timestamp.Time.Sub(*pending)
				pending = nil
			}
		}
	}
	out.TotalHours = roundHours(total)
	return out
}

// roundHours converts d to hours rounded to two decimals.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
