// Package highscores summarises an ordered list of recorded scores.
//
// A Summary borrows the caller's slice and never writes to it. Queries that
// need an ordering work on a private copy, so a Summary is safe for any
// number of concurrent readers.
package highscores

import (
	"slices"
	"sort"
)

// topCount is how many scores PersonalTopThree reports.
const topCount = 3

// Summary answers queries over scores recorded in chronological order:
// the first element is the earliest, the last the most recent.
type Summary struct {
	scores []uint32
}

// New returns a Summary over scores. The slice is not copied; callers must
// not modify it while the Summary is in use.
func New(scores []uint32) *Summary {
	return &Summary{scores: scores}
}

// Scores returns the recorded scores in their original order.
func (s *Summary) Scores() []uint32 {
	return s.scores
}

// Latest returns the most recently recorded score. ok is false when no
// scores were recorded.
func (s *Summary) Latest() (score uint32, ok bool) {
	if len(s.scores) == 0 {
		return 0, false
	}
	return s.scores[len(s.scores)-1], true
}

// PersonalBest returns the highest recorded score. ok is false when no
// scores were recorded.
func (s *Summary) PersonalBest() (score uint32, ok bool) {
	if len(s.scores) == 0 {
		return 0, false
	}
	return slices.Max(s.scores), true
}

// PersonalTopThree returns up to three of the highest scores, highest first.
// Equal scores are all kept. The result is empty, never nil, when no scores
// were recorded.
func (s *Summary) PersonalTopThree() []uint32 {
	sorted := s.descending()
	n := min(topCount, len(sorted))
	return sorted[:n:n]
}

// descending returns a copy of the scores sorted highest first.
func (s *Summary) descending() []uint32 {
	sorted := make([]uint32, len(s.scores))
	copy(sorted, s.scores)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] > sorted[j]
	})
	return sorted
}
