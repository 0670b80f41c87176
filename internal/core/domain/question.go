package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecentWindow is how far back a publication still counts as recent.
const RecentWindow = 24 * time.Hour

type Question struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"question_text"`
	PubDate time.Time `json:"pub_date"`
	Choices []Choice  `json:"choices,omitempty"`
}

// IsPublished reports whether the question is visible at now.
func (q *Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// WasPublishedRecently is true only for questions published within the
// last RecentWindow. Future questions are never recent.
func (q *Question) WasPublishedRecently(now time.Time) bool {
	return !q.PubDate.Before(now.Add(-RecentWindow)) && !q.PubDate.After(now)
}

// TotalVotes sums the votes of the loaded choices.
func (q *Question) TotalVotes() int64 {
	var total int64
	for _, c := range q.Choices {
		total += c.Votes
	}
	return total
}

func (q *Question) String() string {
	return q.Text
}
