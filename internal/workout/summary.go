package workout

import (
	"fmt"
	"strconv"
	"time"
)

const DefaultWeightUnit = "lbs"

// Summary renders the one-liner shown next to an exercise,
// e.g. "Last: 18 reps, 50 lbs, 2 days ago".
func Summary(l ExerciseLog, weightUnit string, now time.Time) string {
	if weightUnit == "" {
		weightUnit = DefaultWeightUnit
	}

	summary := fmt.Sprintf("Last: %d reps", l.TotalReps())
	if maxWeight := l.MaxWeight(); maxWeight > 0 {
		summary += fmt.Sprintf(", %s %s", strconv.FormatFloat(maxWeight, 'f', -1, 64), weightUnit)
	}

	return summary + ", " + TimeAgo(time.UnixMilli(l.Timestamp), now)
}

// TimeAgo buckets the elapsed time into years, months (30 days), days and hours.
// Each bucket only applies when strictly more than one unit has passed.
func TimeAgo(then, now time.Time) string {
	seconds := now.Sub(then).Seconds()

	buckets := []struct {
		seconds float64
		unit    string
	}{
		{seconds: 31536000, unit: "years"},
		{seconds: 2592000, unit: "months"},
		{seconds: 86400, unit: "days"},
		{seconds: 3600, unit: "hours"},
	}
	for _, b := range buckets {
		if interval := seconds / b.seconds; interval > 1 {
			return fmt.Sprintf("%d %s ago", int(interval), b.unit)
		}
	}

	return "Just now"
}
