package workout

import "sort"

// HistoryFor returns the logs of one exercise, oldest first.
// Logs with equal timestamps keep their append order.
func HistoryFor(logs []ExerciseLog, exerciseID string) []ExerciseLog {
	history := make([]ExerciseLog, 0)
	for _, l := range logs {
		if l.ExerciseID == exerciseID {
			history = append(history, l)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp < history[j].Timestamp
	})

	return history
}

// LatestFor returns the newest log of one exercise. When several logs share
// the newest timestamp, the one appended last wins.
func LatestFor(logs []ExerciseLog, exerciseID string) (ExerciseLog, bool) {
	var (
		latest ExerciseLog
		found  bool
	)
	for _, l := range logs {
		if l.ExerciseID != exerciseID {
			continue
		}
		if !found || l.Timestamp >= latest.Timestamp {
			latest = l
			found = true
		}
	}
	return latest, found
}

// LoggedExerciseIDs lists every exercise that has at least one log, in first logged order.
func LoggedExerciseIDs(logs []ExerciseLog) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, l := range logs {
		if seen[l.ExerciseID] {
			continue
		}
		seen[l.ExerciseID] = true
		ids = append(ids, l.ExerciseID)
	}
	return ids
}
