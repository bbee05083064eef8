package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSyr3x/catering-system/internal/session"
	"github.com/MrSyr3x/catering-system/internal/store"
)

func newTestService() (*Service, *store.Memory, *session.Manager) {
	st := store.NewMemory()
	sessions := session.NewManager(session.NewMemoryTokenStore(time.Hour))
	return NewService(st, sessions), st, sessions
}

func register() RegisterRequest {
	return RegisterRequest{
		FullName: "Asha Nair",
		Email:    "asha@example.com",
		Password: "secret123",
		Phone:    "+91 98450 12345",
		Address:  "12 Brigade Rd",
		UserType: "customer",
	}
}

func TestSignUpOpensSessionAndStoresProfile(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newTestService()

	sess, err := svc.SignUp(ctx, register())
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", sess.Email)
	assert.Equal(t, "customer", sess.UserType)
	require.NotNil(t, sess.Cart)

	// The users collection keeps exactly the profile shape.
	rec, err := st.Get(ctx, store.Users, sess.UserID)
	require.NoError(t, err)
	var p Profile
	require.NoError(t, rec.Decode(&p))
	assert.Equal(t, "Asha Nair", p.FullName)
	assert.Equal(t, "asha@example.com", p.Email)
	assert.False(t, p.CreatedAt.IsZero())

	// Credentials live in their own collection.
	creds, err := st.ListWhere(ctx, store.Credentials, "userId", sess.UserID)
	require.NoError(t, err)
	require.Len(t, creds, 1)
}

func TestSignUpDefaultsToCustomer(t *testing.T) {
	svc, _, _ := newTestService()
	req := register()
	req.UserType = ""
	sess, err := svc.SignUp(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, UserTypeCustomer, sess.UserType)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.SignUp(context.Background(), register())
	require.NoError(t, err)
	_, err = svc.SignUp(context.Background(), register())
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestSignUpValidation(t *testing.T) {
	svc, _, _ := newTestService()
	for _, req := range []RegisterRequest{
		{Email: "x@example.com", Password: "pw"},                            // no name
		{FullName: "X", Password: "pw"},                                     // no email
		{FullName: "X", Email: "x@example.com"},                             // no password
		{FullName: "X", Email: "x@example.com", Password: "pw", UserType: "root"}, // unknown type
	} {
		_, err := svc.SignUp(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidProfile)
	}
}

func TestSignInWrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	_, err := svc.SignUp(ctx, register())
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInIsCaseInsensitiveOnEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	_, err := svc.SignUp(ctx, register())
	require.NoError(t, err)

	sess, err := svc.SignIn(ctx, "Asha@Example.COM", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", sess.Email)
}

func TestSignOutEndsSession(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newTestService()
	sess, err := svc.SignUp(ctx, register())
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, sess.Token))
	_, err = sessions.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestSubscribeSeesSignInAndSignOut(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	var seen []*session.Session
	svc.Subscribe(func(s *session.Session) { seen = append(seen, s) })

	sess, err := svc.SignUp(ctx, register())
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx, sess.Token))

	require.Len(t, seen, 2)
	assert.Equal(t, sess.UserID, seen[0].UserID)
	assert.Nil(t, seen[1])
}

func TestUpdateProfilePatchesEditableFieldsOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	sess, err := svc.SignUp(ctx, register())
	require.NoError(t, err)

	err = svc.UpdateProfile(ctx, sess.UserID, UpdateProfileRequest{
		FullName: "Asha N.",
		Phone:    "000",
		Address:  "elsewhere",
	})
	require.NoError(t, err)

	p, err := svc.Profile(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Asha N.", p.FullName)
	assert.Equal(t, "000", p.Phone)
	assert.Equal(t, "elsewhere", p.Address)
	// Email and userType are untouchable through this path.
	assert.Equal(t, "asha@example.com", p.Email)
	assert.Equal(t, "customer", p.UserType)
}

func TestUpdateProfileRequiresFullName(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileRequest{FullName: "  "})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
}
