package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/satsinush/homelab-sub002/internal/config"
	"github.com/satsinush/homelab-sub002/internal/domain"
	"github.com/satsinush/homelab-sub002/pkg/hash"
	"github.com/satsinush/homelab-sub002/pkg/jwt"
)

// fakeUserRepo is an in-memory UserRepository with the same conflict
// and not-found semantics as the Postgres implementation.
type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*domain.User
	updateCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Username != nil {
		for otherID, other := range f.users {
			if otherID != id && other.Username == *update.Username {
				return nil, domain.ErrUsernameTaken
			}
		}
		u.Username = *update.Username
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) EnsureDefaultUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		cp := *u
		return &cp, nil
	}
	now := time.Now()
	u := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func newTestService(t *testing.T, repo *fakeUserRepo) *UserService {
	t.Helper()

	tokenService, err := jwt.NewTokenService("test-secret", time.Hour, "test")
	require.NoError(t, err)

	cfg := &config.Config{
		Admin: config.AdminConfig{
			Username: "admin",
			Password: "changeme",
		},
	}

	return NewUserService(repo, tokenService, cfg)
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string) *domain.User {
	t.Helper()

	passwordHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	now := time.Now()
	u := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestAuthenticate_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)
	user := seedUser(t, repo, "admin", "hunter22222")

	userID, err := svc.Authenticate(context.Background(), "admin", "hunter22222")
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestAuthenticate_UnknownUserAndWrongPassword_SameError(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)
	seedUser(t, repo, "admin", "hunter22222")

	_, errUnknown := svc.Authenticate(context.Background(), "nobody", "whatever")
	_, errWrong := svc.Authenticate(context.Background(), "admin", "wrong-password")

	require.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthenticate_MalformedStoredHash(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	// A corrupted digest must degrade to a denied login
	u := &domain.User{ID: uuid.New(), Username: "admin", PasswordHash: "not-a-digest"}
	require.NoError(t, repo.Create(context.Background(), u))

	_, err := svc.Authenticate(context.Background(), "admin", "whatever")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateProfile_RequiresCurrentPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)
	user := seedUser(t, repo, "admin", "hunter22222")

	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		Username:        "newname",
		CurrentPassword: "wrong-password",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	require.Zero(t, repo.updateCalls)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileRequest{
		CurrentPassword: "whatever",
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfile_UsernameConflict(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)
	alice := seedUser(t, repo, "alice", "password-alice")
	bob := seedUser(t, repo, "bob", "password-bob")

	_, err := svc.UpdateProfile(context.Background(), alice.ID, UpdateProfileRequest{
		Username:        "bob",
		CurrentPassword: "password-alice",
	})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	// Neither record changed
	gotAlice, err := repo.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", gotAlice.Username)

	gotBob, err := repo.GetByID(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Equal(t, "bob", gotBob.Username)
}

func TestUpdateProfile_ChangesUsernameAndPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)
	user := seedUser(t, repo, "admin", "old-password11")

	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		Username:        "operator",
		CurrentPassword: "old-password11",
		NewPassword:     "new-password22",
	})
	require.NoError(t, err)
	require.Equal(t, "operator", updated.Username)

	// Old password no longer works, new one does
	_, err = svc.Authenticate(context.Background(), "operator", "old-password11")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	userID, err := svc.Authenticate(context.Background(), "operator", "new-password22")
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestUpdateProfile_NoChangesShortCircuits(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)
	user := seedUser(t, repo, "admin", "hunter22222")

	got, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		CurrentPassword: "hunter22222",
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Zero(t, repo.updateCalls)
}

func TestCreateDefaultUser_Idempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	first, err := svc.CreateDefaultUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "admin", first.Username)

	second, err := svc.CreateDefaultUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, repo.count())

	// Seeded credentials actually work
	userID, err := svc.Authenticate(context.Background(), "admin", "changeme")
	require.NoError(t, err)
	require.Equal(t, first.ID, userID)
}

func TestTokenPassThrough_RoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	userID := uuid.New()
	token, err := svc.CreateToken(userID)
	require.NoError(t, err)

	got, err := svc.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, got)

	_, err = svc.VerifyToken("not.a.token")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
