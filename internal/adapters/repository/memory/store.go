package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
)

// Store keeps every record in process memory. It is safe for concurrent use
// and backs the service and handler tests.
type Store struct {
	mu          sync.Mutex
	questions   map[uuid.UUID]domain.Question
	choices     map[uuid.UUID]domain.Choice
	choiceOrder []uuid.UUID
	users       map[uuid.UUID]domain.User
	groups      map[uuid.UUID]domain.Group
}

func NewStore() *Store {
	return &Store{
		questions: make(map[uuid.UUID]domain.Question),
		choices:   make(map[uuid.UUID]domain.Choice),
		users:     make(map[uuid.UUID]domain.User),
		groups:    make(map[uuid.UUID]domain.Group),
	}
}
