package domain

import "github.com/google/uuid"

type Choice struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"choice_text"`
	Votes      int64     `json:"votes"`
}

func (c Choice) String() string {
	return c.Text
}
