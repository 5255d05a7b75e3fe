package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolocuentaps32/fanscopa/internal/models"
	"github.com/lolocuentaps32/fanscopa/internal/service"
)

type mockFinder struct {
	FindFunc func(ctx context.Context, email, dni string) (*models.Registration, error)
}

func (m *mockFinder) Find(ctx context.Context, email, dni string) (*models.Registration, error) {
	return m.FindFunc(ctx, email, dni)
}

func TestLogin_AdminEmail(t *testing.T) {
	finder := &mockFinder{
		FindFunc: func(context.Context, string, string) (*models.Registration, error) {
			panic("storage must not be consulted for admin login")
		},
	}
	auth := service.NewAuth(finder, "admin@copacrm.com")

	sess, err := auth.Login(context.Background(), "admin@copacrm.com", "")
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, models.RoleAdmin, sess.Role)
	assert.Empty(t, sess.DNI)
}

func TestLogin_UserBoundToOwnRegistration(t *testing.T) {
	finder := &mockFinder{
		FindFunc: func(_ context.Context, email, dni string) (*models.Registration, error) {
			assert.Equal(t, "manuel.urba@gmail.com", email)
			return &models.Registration{Email: "manuel.urba@gmail.com", DNI: "45738884A"}, nil
		},
	}
	auth := service.NewAuth(finder, "admin@copacrm.com")

	sess, err := auth.Login(context.Background(), "Manuel.Urba@Gmail.com", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, sess.Role)
	assert.Equal(t, "manuel.urba@gmail.com", sess.Email)
	assert.Equal(t, "45738884A", sess.DNI)
}

func TestLogin_DNIIsUppercased(t *testing.T) {
	finder := &mockFinder{
		FindFunc: func(_ context.Context, _, dni string) (*models.Registration, error) {
			assert.Equal(t, "45738884A", dni)
			return &models.Registration{Email: "manuel.urba@gmail.com", DNI: "45738884A"}, nil
		},
	}
	auth := service.NewAuth(finder, "admin@copacrm.com")

	_, err := auth.Login(context.Background(), "", "45738884a")
	require.NoError(t, err)
}

func TestLogin_NoRegistration(t *testing.T) {
	finder := &mockFinder{
		FindFunc: func(context.Context, string, string) (*models.Registration, error) {
			return nil, models.ErrNotFound
		},
	}
	auth := service.NewAuth(finder, "admin@copacrm.com")

	_, err := auth.Login(context.Background(), "nobody@example.com", "")
	assert.ErrorIs(t, err, service.ErrNoRegistration)
}

func TestLogin_StorageError(t *testing.T) {
	wantErr := errors.New("storage exploded")
	finder := &mockFinder{
		FindFunc: func(context.Context, string, string) (*models.Registration, error) {
			return nil, wantErr
		},
	}
	auth := service.NewAuth(finder, "admin@copacrm.com")

	_, err := auth.Login(context.Background(), "someone@example.com", "")
	assert.ErrorIs(t, err, wantErr)
}
