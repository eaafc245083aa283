package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/streamverse/vidtube/internal/apperr"
	"github.com/streamverse/vidtube/internal/config"
	"github.com/streamverse/vidtube/internal/domain"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/token"
)

type userRepoStub struct {
	users map[uuid.UUID]domain.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[uuid.UUID]domain.User)}
}

func (u *userRepoStub) CreateUser(ctx context.Context, m domain.User) (uuid.UUID, error) {
	for _, v := range u.users {
		if v.Username == m.Username || v.Email == m.Email {
			return uuid.Nil, apperr.ErrAlreadyExists
		}
	}
	u.users[m.ID] = m
	return m.ID, nil
}

func (u *userRepoStub) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, v := range u.users {
		if v.Email == email {
			return v, nil
		}
	}
	return domain.User{}, apperr.ErrNotFound
}

func (u *userRepoStub) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	v, ok := u.users[id]
	if !ok {
		return domain.User{}, apperr.ErrNotFound
	}
	return v, nil
}

func (u *userRepoStub) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	for _, v := range u.users {
		if v.Username == username {
			return v, nil
		}
	}
	return domain.User{}, apperr.ErrNotFound
}

func (u *userRepoStub) GetUserByLogin(ctx context.Context, login string) (domain.User, error) {
	for _, v := range u.users {
		if v.Username == login || v.Email == login {
			return v, nil
		}
	}
	return domain.User{}, apperr.ErrNotFound
}

func (u *userRepoStub) UpdateUser(ctx context.Context, m domain.User) error {
	u.users[m.ID] = m
	return nil
}

func (u *userRepoStub) UpdateRefreshToken(ctx context.Context, id uuid.UUID, tok string) error {
	v, ok := u.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	v.RefreshToken = tok
	u.users[id] = v
	return nil
}

func (u *userRepoStub) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	v, ok := u.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	v.PasswordHash = hash
	u.users[id] = v
	return nil
}

type limiterStub struct {
	attempts map[string]int
	max      int
}

func newLimiterStub(max int) *limiterStub {
	return &limiterStub{attempts: make(map[string]int), max: max}
}

func (l *limiterStub) Enforce(ctx context.Context, identifier, ip string) error {
	l.attempts[identifier]++
	if l.attempts[identifier] > l.max {
		return apperr.ErrTooManyAttempts
	}
	return nil
}

func (l *limiterStub) Reset(ctx context.Context, identifier string) error {
	delete(l.attempts, identifier)
	return nil
}

func newSvc(t *testing.T) (Service, *userRepoStub, *limiterStub) {
	t.Helper()

	cfg := &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		TokenIssuer:        "test",
		PasswordPepper:     "pepper",
	}
	util, err := token.NewUtil(cfg)
	require.NoError(t, err)

	v := validate.New()
	require.NoError(t, v.RegisterValidation("strongpwd", func(fl validate.FieldLevel) bool {
		return len(fl.Field().String()) >= 8
	}))

	users := newUserRepoStub()
	lim := newLimiterStub(5)
	return NewService(users, util, lim, cfg, v), users, lim
}

func register(t *testing.T, svc Service) domain.PublicUser {
	t.Helper()
	user, err := svc.Register(context.Background(), dto.RegisterDTO{
		FullName: "Alice Example",
		Email:    "a@x.com",
		Username: "alice",
		Password: "secretpw1",
	})
	require.NoError(t, err)
	return user
}

func TestService_RegisterLogin(t *testing.T) {
	svc, _, _ := newSvc(t)
	ctx := context.Background()

	user := register(t, svc)
	require.Equal(t, "alice", user.Username)

	got, pair, err := svc.Login(ctx, dto.LoginDTO{Username: "alice", Password: "secretpw1"}, "1.2.3.4")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestService_RegisterLowercasesUsername(t *testing.T) {
	svc, _, _ := newSvc(t)
	user, err := svc.Register(context.Background(), dto.RegisterDTO{
		FullName: "Bob",
		Email:    "b@x.com",
		Username: "BobTheUser",
		Password: "secretpw1",
	})
	require.NoError(t, err)
	require.Equal(t, strings.ToLower("BobTheUser"), user.Username)
}

func TestService_RegisterDuplicate(t *testing.T) {
	svc, _, _ := newSvc(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), dto.RegisterDTO{
		FullName: "Alice Clone",
		Email:    "a@x.com",
		Username: "alice2",
		Password: "secretpw1",
	})
	require.True(t, apperr.IsAlreadyExists(err))
}

func TestService_LoginWrongPassword(t *testing.T) {
	svc, _, _ := newSvc(t)
	register(t, svc)

	_, _, err := svc.Login(context.Background(), dto.LoginDTO{Username: "alice", Password: "wrongwrong"}, "")
	require.True(t, apperr.IsInvalidCredentials(err))
}

func TestService_LoginUnknownUser(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, _, err := svc.Login(context.Background(), dto.LoginDTO{Username: "nobody", Password: "whatever1"}, "")
	require.True(t, apperr.IsNotFound(err))
}

func TestService_LoginByEmail(t *testing.T) {
	svc, _, _ := newSvc(t)
	user := register(t, svc)

	got, _, err := svc.Login(context.Background(), dto.LoginDTO{Email: "a@x.com", Password: "secretpw1"}, "")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestService_LoginRateLimited(t *testing.T) {
	svc, _, _ := newSvc(t)
	register(t, svc)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(ctx, dto.LoginDTO{Username: "alice", Password: "wrongwrong"}, "")
		require.True(t, apperr.IsInvalidCredentials(err))
	}
	_, _, err := svc.Login(ctx, dto.LoginDTO{Username: "alice", Password: "secretpw1"}, "")
	require.True(t, apperr.IsTooManyAttempts(err))
}

func TestService_RefreshRoundtrip(t *testing.T) {
	svc, _, _ := newSvc(t)
	user := register(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, dto.LoginDTO{Username: "alice", Password: "secretpw1"}, "")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, rotated.UserID)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
}

// Rotation invalidates the previous refresh token: after a second issue only
// the latest persisted value verifies.
func TestService_RefreshReuseDetected(t *testing.T) {
	svc, _, _ := newSvc(t)
	register(t, svc)
	ctx := context.Background()

	_, first, err := svc.Login(ctx, dto.LoginDTO{Username: "alice", Password: "secretpw1"}, "")
	require.NoError(t, err)

	_, second, err := svc.Login(ctx, dto.LoginDTO{Username: "alice", Password: "secretpw1"}, "")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.True(t, apperr.IsTokenReused(err))

	_, err = svc.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestService_RefreshAfterLogout(t *testing.T) {
	svc, _, _ := newSvc(t)
	user := register(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, dto.LoginDTO{Username: "alice", Password: "secretpw1"}, "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))
	// idempotent
	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.True(t, apperr.IsTokenReused(err))
}

func TestService_RefreshGarbage(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, err := svc.Refresh(context.Background(), "")
	require.True(t, apperr.IsInvalidToken(err))

	_, err = svc.Refresh(context.Background(), "not-a-jwt")
	require.True(t, apperr.IsInvalidToken(err))
}

func TestService_ValidateAccess(t *testing.T) {
	svc, _, _ := newSvc(t)
	user := register(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, dto.LoginDTO{Username: "alice", Password: "secretpw1"}, "")
	require.NoError(t, err)

	uid, err := svc.ValidateAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)

	// refresh token must not pass the access check
	_, err = svc.ValidateAccess(pair.RefreshToken)
	require.True(t, apperr.IsInvalidToken(err))
}

func TestService_ChangePassword(t *testing.T) {
	svc, _, _ := newSvc(t)
	user := register(t, svc)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, dto.ChangePasswordDTO{
		OldPassword: "wrongwrong",
		NewPassword: "newsecret1",
	})
	require.True(t, apperr.IsInvalidCredentials(err))

	err = svc.ChangePassword(ctx, user.ID, dto.ChangePasswordDTO{
		OldPassword: "secretpw1",
		NewPassword: "newsecret1",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, dto.LoginDTO{Username: "alice", Password: "newsecret1"}, "")
	require.NoError(t, err)
}

func TestService_UpdateAccount(t *testing.T) {
	svc, _, _ := newSvc(t)
	user := register(t, svc)
	ctx := context.Background()

	updated, err := svc.UpdateAccount(ctx, user.ID, dto.UpdateAccountDTO{
		FullName: "Alice Renamed",
		Email:    "alice@new.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Renamed", updated.FullName)

	me, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@new.com", me.Email)
}
