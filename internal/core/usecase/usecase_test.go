package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/user-api/internal/core/domain"
	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/infrastructure/db/memory"
	"github.com/userhub/user-api/internal/pkg/metrics"
)

// ---------------------------------------------------------------------------
// Stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   []*domain.User
	created []*domain.User // inputs passed to Create
	err     error          // if set, every call returns this error
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.created = append(r.created, u)
	out := u.WithID(fmt.Sprintf("stub-%d", len(r.users)+1), u.CreatedAt)
	r.users = append(r.users, out)
	return out, nil
}

func (r *stubUserRepo) FindAll(context.Context) ([]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// CreateUser
// ---------------------------------------------------------------------------

func TestCreateUser_DefaultsRole(t *testing.T) {
	repo := &stubUserRepo{}
	uc := NewCreateUser(repo, discardLogger)

	got, err := uc.Execute(context.Background(), ports.CreateUserInput{Name: "John", Email: "john@x.com"})
	require.NoError(t, err)

	assert.Equal(t, "stub-1", got.ID)
	assert.Equal(t, "John", got.Name)
	assert.Equal(t, "john@x.com", got.Email)
	assert.Equal(t, domain.RoleUser, got.Role)

	require.Len(t, repo.created, 1)
	assert.False(t, repo.created[0].IsPersisted(), "repository must receive a transient user")
}

func TestCreateUser_KeepsExplicitRole(t *testing.T) {
	uc := NewCreateUser(&stubUserRepo{}, discardLogger)

	got, err := uc.Execute(context.Background(), ports.CreateUserInput{Name: "Root", Email: "root@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestCreateUser_TrimsInput(t *testing.T) {
	repo := &stubUserRepo{}
	uc := NewCreateUser(repo, discardLogger)

	got, err := uc.Execute(context.Background(), ports.CreateUserInput{Name: "  Ana ", Email: " ana@x.com", Role: "  "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@x.com", got.Email)
	assert.Equal(t, domain.RoleUser, got.Role)
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		in   ports.CreateUserInput
		want string
	}{
		{"empty payload", ports.CreateUserInput{}, "name is required; email is required"},
		{"missing email", ports.CreateUserInput{Name: "x"}, "email is required"},
		{"missing name", ports.CreateUserInput{Email: "x@x.com"}, "name is required"},
		{"blank name", ports.CreateUserInput{Name: "   ", Email: "x@x.com"}, "name is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubUserRepo{}
			uc := NewCreateUser(repo, discardLogger)

			_, err := uc.Execute(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
			assert.Equal(t, tc.want, err.Error())
			assert.Empty(t, repo.created, "nothing may be persisted")
		})
	}
}

func TestCreateUser_PropagatesRepositoryError(t *testing.T) {
	boom := errors.New("connection reset")
	uc := NewCreateUser(&stubUserRepo{err: boom}, discardLogger)

	_, err := uc.Execute(context.Background(), ports.CreateUserInput{Name: "a", Email: "a@x.com"})
	require.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, domain.ErrValidation))
	assert.False(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestCreateUser_PropagatesEmailTaken(t *testing.T) {
	uc := NewCreateUser(&stubUserRepo{err: domain.ErrEmailTaken}, discardLogger)

	_, err := uc.Execute(context.Background(), ports.CreateUserInput{Name: "a", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestCreateUser_CountsByRole(t *testing.T) {
	counter := metrics.UsersCreatedTotal.WithLabelValues("auditor")
	before := testutil.ToFloat64(counter)

	uc := NewCreateUser(&stubUserRepo{}, discardLogger)
	_, err := uc.Execute(context.Background(), ports.CreateUserInput{Name: "a", Email: "a@x.com", Role: "auditor"})
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

// ---------------------------------------------------------------------------
// GetAllUsers
// ---------------------------------------------------------------------------

func TestGetAllUsers_Empty(t *testing.T) {
	uc := NewGetAllUsers(&stubUserRepo{}, discardLogger)

	got, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetAllUsers_PreservesOrder(t *testing.T) {
	repo := &stubUserRepo{users: []*domain.User{
		{ID: "b", Name: "second"},
		{ID: "a", Name: "first"},
	}}
	uc := NewGetAllUsers(repo, discardLogger)

	got, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestGetAllUsers_PropagatesError(t *testing.T) {
	boom := errors.New("timeout")
	uc := NewGetAllUsers(&stubUserRepo{err: boom}, discardLogger)

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
}

// ---------------------------------------------------------------------------
// GetUserByID
// ---------------------------------------------------------------------------

func TestGetUserByID_Found(t *testing.T) {
	repo := &stubUserRepo{users: []*domain.User{{ID: "7", Name: "Kim", Email: "kim@x.com", Role: domain.RoleUser}}}
	uc := NewGetUserByID(repo, discardLogger)

	got, err := uc.Execute(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Kim", got.Name)
}

func TestGetUserByID_Absent(t *testing.T) {
	uc := NewGetUserByID(&stubUserRepo{}, discardLogger)

	_, err := uc.Execute(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, "user not found", err.Error())
}

func TestGetUserByID_PropagatesError(t *testing.T) {
	boom := errors.New("socket closed")
	uc := NewGetUserByID(&stubUserRepo{err: boom}, discardLogger)

	_, err := uc.Execute(context.Background(), "1")
	require.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, domain.ErrUserNotFound))
}

// ---------------------------------------------------------------------------
// Full flow over a real adapter, addressed only through the port
// ---------------------------------------------------------------------------

func TestUseCases_RoundTripThroughPort(t *testing.T) {
	var repo ports.UserRepository = memory.NewUserRepository()
	create := NewCreateUser(repo, discardLogger)
	getAll := NewGetAllUsers(repo, discardLogger)
	getByID := NewGetUserByID(repo, discardLogger)
	ctx := context.Background()

	all, err := getAll.Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	inputs := []ports.CreateUserInput{
		{Name: "John", Email: "john@x.com"},
		{Name: "Mary", Email: "mary@x.com", Role: domain.RoleAdmin},
		{Name: "Lee", Email: "lee@x.com"},
	}
	for _, in := range inputs {
		created, err := create.Execute(ctx, in)
		require.NoError(t, err)

		found, err := getByID.Execute(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, in.Name, found.Name)
		assert.Equal(t, in.Email, found.Email)
		if in.Role == "" {
			assert.Equal(t, domain.RoleUser, found.Role)
		} else {
			assert.Equal(t, in.Role, found.Role)
		}
	}

	all, err = getAll.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(inputs))
	for i, in := range inputs {
		assert.Equal(t, in.Email, all[i].Email)
	}

	_, err = create.Execute(ctx, ports.CreateUserInput{})
	require.ErrorIs(t, err, domain.ErrValidation)
	all, err = getAll.Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(inputs), "failed validation must not persist")

	for _, id := range []string{"999", "doesnotexist"} {
		_, err = getByID.Execute(ctx, id)
		assert.ErrorIs(t, err, domain.ErrUserNotFound, "id %q", id)
	}
}
