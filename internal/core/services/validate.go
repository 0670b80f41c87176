package services

import (
	"fmt"
	"unicode/utf8"

	"github.com/vncsmyrnk/mysite/internal/core/domain"
)

// Column limits of the postgres schema.
const (
	maxQuestionTextLength = 200
	maxChoiceTextLength   = 200
	maxUsernameLength     = 150
	maxEmailLength        = 254
	maxGroupNameLength    = 150
)

// checkLength counts characters, not bytes, matching VARCHAR(n).
func checkLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s must be at most %d characters", domain.ErrValidation, field, limit)
	}
	return nil
}
