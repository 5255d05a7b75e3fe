// Package service provides business-logic services for the registration
// portal, delegating persistence to repository and local-store interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// RemoteStore defines the remote persistence operations needed by the
// storage facade. Implementations perform single round-trips with no
// internal retry; any transport error triggers the local fallback.
type RemoteStore interface {
	// ListAll fetches every registration ordered by ascending order number.
	ListAll(ctx context.Context) ([]models.Registration, error)
	// FindByEmailOrDNI returns the single matching registration, querying by
	// email when non-empty and by DNI otherwise.
	FindByEmailOrDNI(ctx context.Context, email, dni string) (*models.Registration, error)
	// UpdateByDNI applies a partial update to the row matching dni.
	UpdateByDNI(ctx context.Context, dni string, patch models.RegistrationPatch) error
	// DeleteByDNI removes the row matching dni.
	DeleteByDNI(ctx context.Context, dni string) error
	// Create inserts a new registration and returns the stored record.
	Create(ctx context.Context, reg models.Registration) (*models.Registration, error)
}

// LocalStore defines the degraded-mode operations backed by the local
// shadow copy of the registration list.
type LocalStore interface {
	// ReadAll returns the stored list, seeding an empty slot.
	ReadAll() ([]models.Registration, error)
	// WriteAll overwrites the stored list.
	WriteAll(regs []models.Registration) error
	// UpdateByDNI merges the patch into the matching record and returns the list.
	UpdateByDNI(dni string, patch models.RegistrationPatch) ([]models.Registration, error)
	// DeleteByDNI removes the matching record and returns the list.
	DeleteByDNI(dni string) ([]models.Registration, error)
	// FindByEmailOrDNI returns the first record matching email or DNI.
	FindByEmailOrDNI(email, dni string) (*models.Registration, error)
}

// Storage is the single storage entry point the rest of the portal depends
// on. Every operation tries the remote store first and, on any transport
// error, logs a warning and serves the local shadow copy instead. Callers
// never learn which backing store answered, and local-only edits made
// during an outage are not replayed into the remote store.
type Storage struct {
	remote RemoteStore
	local  LocalStore
	log    *zap.Logger
}

// NewStorage constructs the storage facade.
func NewStorage(remote RemoteStore, local LocalStore, log *zap.Logger) *Storage {
	return &Storage{remote: remote, local: local, log: log}
}

// ListAll returns the full registration list, served from the remote store
// or, in degraded mode, from the local copy.
func (s *Storage) ListAll(ctx context.Context) ([]models.Registration, error) {
	regs, err := s.remote.ListAll(ctx)
	if err != nil {
		s.log.Warn("remote list failed, serving local copy", zap.Error(err))
		return s.local.ReadAll()
	}
	return regs, nil
}

// Find returns the registration matching the given email or DNI. An empty
// email and DNI short-circuits to models.ErrNotFound without any backing
// call. Not-found is a valid outcome and never triggers the fallback.
func (s *Storage) Find(ctx context.Context, email, dni string) (*models.Registration, error) {
	if email == "" && dni == "" {
		return nil, models.ErrNotFound
	}
	reg, err := s.remote.FindByEmailOrDNI(ctx, email, dni)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.log.Warn("remote find failed, searching local copy",
			zap.String("email", email), zap.String("dni", dni), zap.Error(err))
		return s.local.FindByEmailOrDNI(email, dni)
	}
	return reg, nil
}

// Update applies a partial update to the record matching dni and returns
// the fresh post-mutation list. On remote success the list is re-fetched
// from the remote store so callers observe a consistent authoritative view;
// that extra round-trip degrades to the local copy if it fails.
func (s *Storage) Update(ctx context.Context, dni string, patch models.RegistrationPatch) ([]models.Registration, error) {
	if err := s.remote.UpdateByDNI(ctx, dni, patch); err != nil {
		s.log.Warn("remote update failed, updating local copy",
			zap.String("dni", dni), zap.Error(err))
		return s.local.UpdateByDNI(dni, patch)
	}
	return s.ListAll(ctx)
}

// Delete removes the record matching dni and returns the fresh
// post-mutation list. Deleting an absent DNI is a no-op.
func (s *Storage) Delete(ctx context.Context, dni string) ([]models.Registration, error) {
	if err := s.remote.DeleteByDNI(ctx, dni); err != nil {
		s.log.Warn("remote delete failed, deleting from local copy",
			zap.String("dni", dni), zap.Error(err))
		return s.local.DeleteByDNI(dni)
	}
	return s.ListAll(ctx)
}

// Create inserts a new registration and returns the stored record with its
// assigned order number. Creation has no local equivalent: a remote failure
// surfaces as a nil result with the error, without falling back.
func (s *Storage) Create(ctx context.Context, reg models.Registration) (*models.Registration, error) {
	created, err := s.remote.Create(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return created, nil
}
