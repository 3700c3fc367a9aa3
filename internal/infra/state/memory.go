package state

import (
	"sync"

	"telegram-gate-bot/internal/domain/ports/repository"
)

var _ repository.ConversationRegistry = (*MemoryRegistry)(nil)

// MemoryRegistry keeps all conversation state in process memory: the
// admin wizard cursors and the last bot message id per user. Nothing
// here survives a restart.
type MemoryRegistry struct {
	mu       sync.RWMutex
	wizards  map[int64]repository.WizardState
	messages map[int64]int
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		wizards:  make(map[int64]repository.WizardState),
		messages: make(map[int64]int),
	}
}

func (r *MemoryRegistry) SetWizard(userID int64, st repository.WizardState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wizards[userID] = st
}

func (r *MemoryRegistry) Wizard(userID int64) (repository.WizardState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.wizards[userID]
	return st, ok
}

func (r *MemoryRegistry) ClearWizard(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.wizards, userID)
}

func (r *MemoryRegistry) TrackMessage(userID int64, messageID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[userID] = messageID
}

func (r *MemoryRegistry) TakeMessage(userID int64) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.messages[userID]
	if ok {
		delete(r.messages, userID)
	}
	return id, ok
}
