// Package storage implements the local fallback store: a durable key-value
// slot holding the full registration list, served when the remote store is
// unreachable. The slot is a shadow copy; it is never reconciled back into
// the remote store.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// LocalStore keeps the entire registration list as one serialized blob.
// All operations are synchronous read-modify-write sequences guarded by a
// process-local mutex; two processes sharing the same blob can still race.
type LocalStore struct {
	blob Blob
	mu   sync.Mutex
}

// NewLocalStore creates a LocalStore over the given blob.
func NewLocalStore(blob Blob) *LocalStore {
	return &LocalStore{blob: blob}
}

// ReadAll returns the stored registration list. A slot that has never been
// written, and a slot whose contents no longer parse, both yield the seed
// list: corrupt local data is treated as absent rather than fatal.
func (s *LocalStore) ReadAll() ([]models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *LocalStore) readAll() ([]models.Registration, error) {
	data, ok, err := s.blob.Read()
	if err != nil {
		return nil, fmt.Errorf("read local slot: %w", err)
	}
	if !ok {
		return SeedRegistrations(), nil
	}
	var regs []models.Registration
	if err := json.Unmarshal(data, &regs); err != nil {
		return SeedRegistrations(), nil
	}
	return regs, nil
}

// WriteAll overwrites the slot with the given list.
func (s *LocalStore) WriteAll(regs []models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeAll(regs)
}

func (s *LocalStore) writeAll(regs []models.Registration) error {
	data, err := json.Marshal(regs)
	if err != nil {
		return fmt.Errorf("marshal registrations: %w", err)
	}
	if err := s.blob.Write(data); err != nil {
		return fmt.Errorf("write local slot: %w", err)
	}
	return nil
}

// UpdateByDNI merges the patch into the record matching dni and returns the
// resulting list. A DNI with no matching record leaves the list unchanged.
func (s *LocalStore) UpdateByDNI(dni string, patch models.RegistrationPatch) ([]models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i, reg := range regs {
		if reg.DNI == dni {
			regs[i] = patch.Apply(reg)
		}
	}
	if err := s.writeAll(regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// DeleteByDNI removes the record matching dni and returns the resulting
// list. Deleting an absent DNI is a no-op.
func (s *LocalStore) DeleteByDNI(dni string) ([]models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.readAll()
	if err != nil {
		return nil, err
	}
	kept := make([]models.Registration, 0, len(regs))
	for _, reg := range regs {
		if reg.DNI != dni {
			kept = append(kept, reg)
		}
	}
	if err := s.writeAll(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// FindByEmailOrDNI scans the list and returns the first record whose email
// or DNI matches. Returns models.ErrNotFound when nothing matches.
func (s *LocalStore) FindByEmailOrDNI(email, dni string) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, reg := range regs {
		if (email != "" && reg.Email == email) || (dni != "" && reg.DNI == dni) {
			return &reg, nil
		}
	}
	return nil, models.ErrNotFound
}
