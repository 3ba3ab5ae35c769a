package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/bitebudget/internal/user"
)

func mockConnect(t *testing.T) (connectFunc, *user.MockRepository) {
	t.Helper()

	repo := user.NewMockRepository(gomock.NewController(t))
	svc := user.NewService(repo).WithHashCost(bcrypt.MinCost)

	return func(context.Context) (*user.Service, func() error, error) {
		return svc, func() error { return nil }, nil
	}, repo
}

func TestRun_Success(t *testing.T) {
	connect, repo := mockConnect(t)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
		assert.Equal(t, "ana", u.Username)
		assert.Equal(t, "ana@example.com", u.Email)
		u.ID = uuid.New()

		return nil
	})

	var stdout, stderr bytes.Buffer

	args := []string{"-user", "ana", "-email", "ana@example.com", "-password", "supersecret"}
	require.NoError(t, run(context.Background(), args, new(bytes.Buffer), &stdout, &stderr, connect))

	assert.Contains(t, stdout.String(), "User ana created successfully")
}

func TestRun_InteractivePassword(t *testing.T) {
	connect, repo := mockConnect(t)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("typed-secret")))
		return nil
	})

	var stdout, stderr bytes.Buffer

	args := []string{"-user", "ana", "-email", "ana@example.com"}
	err := run(context.Background(), args, bytes.NewBufferString("typed-secret\n"), &stdout, &stderr, connect)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Password: ")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		setup   func(repo *user.MockRepository)
		wantErr string
	}{
		{
			name:    "MissingFlags",
			args:    []string{"-password", "supersecret"},
			setup:   func(repo *user.MockRepository) {},
			wantErr: "missing required flags",
		},
		{
			name:    "EmptyPassword",
			args:    []string{"-user", "ana", "-email", "ana@example.com"},
			stdin:   "\n",
			setup:   func(repo *user.MockRepository) {},
			wantErr: "password cannot be empty",
		},
		{
			name:    "ShortPassword",
			args:    []string{"-user", "ana", "-email", "ana@example.com", "-password", "short"},
			setup:   func(repo *user.MockRepository) {},
			wantErr: "at least 8 characters",
		},
		{
			name: "Duplicate",
			args: []string{"-user", "ana", "-email", "ana@example.com", "-password", "supersecret"},
			setup: func(repo *user.MockRepository) {
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(user.ErrTaken)
			},
			wantErr: "already exists",
		},
		{
			name:    "InvalidFlag",
			args:    []string{"-invalid"},
			setup:   func(repo *user.MockRepository) {},
			wantErr: "flag provided but not defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connect, repo := mockConnect(t)
			tt.setup(repo)

			var stdout, stderr bytes.Buffer

			err := run(context.Background(), tt.args, bytes.NewBufferString(tt.stdin), &stdout, &stderr, connect)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_ConnectError(t *testing.T) {
	connect := func(context.Context) (*user.Service, func() error, error) {
		return nil, nil, errors.New("failed to open database: refused")
	}

	var stdout, stderr bytes.Buffer

	args := []string{"-user", "ana", "-email", "ana@example.com", "-password", "supersecret"}
	err := run(context.Background(), args, new(bytes.Buffer), &stdout, &stderr, connect)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}
