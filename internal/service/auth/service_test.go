package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUsers implements the parts of user.UserRepository the auth flow touches.
type fakeUsers struct {
	user.UserRepository
	byID  map[string]user.User
	roles map[user.Role]int
	depts map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:  map[string]user.User{},
		roles: map[user.Role]int{user.RoleAdmin: 1, user.RoleManager: 2, user.RoleEmployee: 3},
		depts: map[string]string{"dept-1": "Engineering"},
	}
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUsers) GetByResetToken(ctx context.Context, token string) (user.User, error) {
	for _, u := range f.byID {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUsers) Create(ctx context.Context, u user.User) (user.User, error) {
	if _, err := f.GetByEmail(ctx, u.Email); err == nil {
		return user.User{}, user.ErrUserEmailExists
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id, hash string) error {
	u := f.byID[id]
	u.PasswordHash = hash
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	u := f.byID[id]
	u.ResetPasswordToken = &token
	u.ResetPasswordExpires = &expires
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) GetRoleByName(ctx context.Context, name user.Role) (user.RoleInfo, error) {
	id, ok := f.roles[name]
	if !ok {
		return user.RoleInfo{}, user.ErrRoleNotFound
	}
	return user.RoleInfo{ID: id, Name: name}, nil
}

func (f *fakeUsers) GetDepartment(ctx context.Context, id string) (user.Department, error) {
	name, ok := f.depts[id]
	if !ok {
		return user.Department{}, user.ErrDepartmentNotFound
	}
	return user.Department{ID: id, Name: name}, nil
}

type fakeLeaves struct {
	initialized map[string]time.Time
}

func (f *fakeLeaves) Initialize(ctx context.Context, userID string, hireDate *time.Time) ([]leave.Balance, error) {
	f.initialized[userID] = *hireDate
	return nil, nil
}

type fakeMailer struct {
	to, link string
}

func (m *fakeMailer) SendPasswordReset(to, resetLink, expiresAt string) error {
	m.to, m.link = to, resetLink
	return nil
}

type fixture struct {
	svc    auth.AuthService
	users  *fakeUsers
	leaves *fakeLeaves
	mailer *fakeMailer
	jwt    jwt.Service
	clock  *calendar.FixedClock
}

func newFixture() *fixture {
	f := &fixture{
		users:  newFakeUsers(),
		leaves: &fakeLeaves{initialized: map[string]time.Time{}},
		mailer: &fakeMailer{},
		jwt:    jwt.NewJWTService("test-secret-key-for-jwt", "1h"),
		clock:  &calendar.FixedClock{At: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}
	f.svc = NewAuthService(f.users, f.jwt, f.leaves, f.mailer, database.NoopTransactor{}, f.clock, "https://hr.example.com")
	return f
}

func (f *fixture) signup(t *testing.T, email string) auth.AuthResponse {
	t.Helper()
	resp, err := f.svc.Signup(context.Background(), auth.SignupRequest{
		Email:    email,
		Password: "correct-horse",
		FullName: "Test User",
	})
	require.NoError(t, err)
	return resp
}

func TestSignup_IssuesTokenWithClaims(t *testing.T) {
	f := newFixture()
	dept := "dept-1"
	hire := "2026-07-01"

	resp, err := f.svc.Signup(context.Background(), auth.SignupRequest{
		Email:        "ana@example.com",
		Password:     "correct-horse",
		Role:         "Manager",
		FullName:     "Ana",
		DepartmentID: &dept,
		HireDate:     &hire,
	})

	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, resp.User.Role)
	assert.Greater(t, resp.ExpiresAt, int64(0))

	token, err := jwtauth.VerifyToken(f.jwt.JWTAuth(), resp.AccessToken)
	require.NoError(t, err)
	raw, err := token.AsMap(context.Background())
	require.NoError(t, err)
	claims, err := jwt.ParseClaims(raw)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, 2, claims.RoleID)
	assert.Equal(t, "dept-1", *claims.DepartmentID)

	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), f.leaves.initialized[resp.User.ID])
	assert.NotEqual(t, "correct-horse", f.users.byID[resp.User.ID].PasswordHash)
}

func TestSignup_DefaultsToEmployee(t *testing.T) {
	f := newFixture()

	resp := f.signup(t, "bo@example.com")

	assert.Equal(t, user.RoleEmployee, resp.User.Role)
	assert.Empty(t, f.leaves.initialized)
}

func TestSignup_Errors(t *testing.T) {
	f := newFixture()
	f.signup(t, "taken@example.com")
	unknownDept := "dept-9"

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.svc.Signup(context.Background(), auth.SignupRequest{Email: "taken@example.com", Password: "correct-horse"})
		assert.ErrorIs(t, err, user.ErrUserEmailExists)
	})
	t.Run("unknown department", func(t *testing.T) {
		_, err := f.svc.Signup(context.Background(), auth.SignupRequest{Email: "new@example.com", Password: "correct-horse", DepartmentID: &unknownDept})
		assert.ErrorIs(t, err, user.ErrDepartmentNotFound)
	})
	t.Run("invalid input", func(t *testing.T) {
		_, err := f.svc.Signup(context.Background(), auth.SignupRequest{Email: "nope", Password: "short", Role: "owner"})

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		m := verrs.ToMap()
		assert.Contains(t, m, "email")
		assert.Contains(t, m, "password")
		assert.Contains(t, m, "role")
	})
}

func TestSignin(t *testing.T) {
	f := newFixture()
	created := f.signup(t, "ana@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := f.svc.Signin(context.Background(), auth.SigninRequest{Email: "ANA@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, created.User.ID, resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Signin(context.Background(), auth.SigninRequest{Email: "ana@example.com", Password: "battery-staple"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Signin(context.Background(), auth.SigninRequest{Email: "who@example.com", Password: "correct-horse"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
	t.Run("inactive account", func(t *testing.T) {
		u := f.users.byID[created.User.ID]
		u.IsActive = false
		f.users.byID[u.ID] = u

		_, err := f.svc.Signin(context.Background(), auth.SigninRequest{Email: "ana@example.com", Password: "correct-horse"})
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})
}

func TestPasswordReset_Flow(t *testing.T) {
	f := newFixture()
	created := f.signup(t, "ana@example.com")
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "ana@example.com"}))

	stored := f.users.byID[created.User.ID]
	require.NotNil(t, stored.ResetPasswordToken)
	token := *stored.ResetPasswordToken
	assert.Len(t, token, 40)
	assert.Equal(t, f.clock.At.Add(time.Hour), *stored.ResetPasswordExpires)
	assert.Equal(t, "ana@example.com", f.mailer.to)
	assert.Equal(t, "https://hr.example.com/reset-password?token="+token, f.mailer.link)

	require.NoError(t, f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: token, NewPassword: "battery-staple"}))

	_, err := f.svc.Signin(ctx, auth.SigninRequest{Email: "ana@example.com", Password: "battery-staple"})
	require.NoError(t, err)

	err = f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: token, NewPassword: "another-one"})
	assert.ErrorIs(t, err, auth.ErrInvalidResetToken, "token is single use")
}

func TestResetPassword_Expired(t *testing.T) {
	f := newFixture()
	f.signup(t, "ana@example.com")
	ctx := context.Background()
	require.NoError(t, f.svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "ana@example.com"}))
	var token string
	for _, u := range f.users.byID {
		token = *u.ResetPasswordToken
	}

	f.clock.At = f.clock.At.Add(61 * time.Minute)
	err := f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: token, NewPassword: "battery-staple"})

	assert.ErrorIs(t, err, auth.ErrInvalidResetToken)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	f := newFixture()

	err := f.svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{Email: "ghost@example.com"})

	require.NoError(t, err)
	assert.Empty(t, f.mailer.to)
}
