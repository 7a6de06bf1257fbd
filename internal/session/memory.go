package session

import (
	"context"
	"encoding/json"
	"sync"

	"storefront/internal/domain"
)

// memoryStore keeps session state in process memory. Used when no database
// is configured and in tests.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

func NewMemory() Store {
	return &memoryStore{entries: make(map[string]map[string]string)}
}

func (s *memoryStore) Load(_ context.Context, deviceID string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var state State
	device, ok := s.entries[deviceID]
	if !ok {
		return state, nil
	}
	if raw, ok := device[entryCart]; ok {
		var lines []domain.LineItem
		if err := json.Unmarshal([]byte(raw), &lines); err == nil {
			state.Lines = lines
		}
	}
	state.CheckoutID = device[entryCheckoutID]
	return state, nil
}

func (s *memoryStore) SaveCart(_ context.Context, deviceID string, lines []domain.LineItem) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.device(deviceID)[entryCart] = string(payload)
	return nil
}

func (s *memoryStore) SaveCheckoutID(_ context.Context, deviceID, checkoutID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.device(deviceID)[entryCheckoutID] = checkoutID
	return nil
}

func (s *memoryStore) Clear(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, deviceID)
	return nil
}

func (s *memoryStore) device(deviceID string) map[string]string {
	device, ok := s.entries[deviceID]
	if !ok {
		device = make(map[string]string)
		s.entries[deviceID] = device
	}
	return device
}
