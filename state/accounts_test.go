package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/storage"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	u, err := f.app.RegisterUser(ctx, " Hanuman ", "Hanuman@Example.com", "jaishriram")
	require.NoError(t, err)
	assert.Equal(t, "Hanuman", u.Name)
	assert.Equal(t, "hanuman@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)

	_, err = f.app.RegisterUser(ctx, "Other", "hanuman@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := f.app.Authenticate("HANUMAN@example.com", "jaishriram")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.app.Authenticate("hanuman@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = f.app.Authenticate("nobody@example.com", "jaishriram")
	assert.ErrorIs(t, err, ErrBadCredentials)

	stored := storage.Load(ctx, f.store, storage.KeyUsers, []models.User(nil))
	assert.Len(t, stored, 4)
	assert.NotEmpty(t, stored[3].PasswordHash)
}

func TestRegisterUser_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	for _, tc := range []struct{ name, email, password, msg string }{
		{"", "a@b.co", "password1", msgNameRequired},
		{"A", "not-an-email", "password1", msgEmailInvalid},
		{"A", "a@b.co", "short", msgPasswordTooShort},
	} {
		_, err := f.app.RegisterUser(ctx, tc.name, tc.email, tc.password)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, tc.msg, verr.Message)
	}
	assert.Len(t, f.app.Users(), 3)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	_, err := f.app.ToggleFollow(ctx, "u2", "u1")
	require.NoError(t, err)

	u, err := f.app.UpdateProfile(ctx, "u1", models.ProfileUpdate{Name: "Shri Ram", Bio: "Maryada Purushottam", Location: "Ayodhya"})
	require.NoError(t, err)
	assert.Equal(t, "Shri Ram", u.Name)
	assert.Equal(t, []string{"u2"}, u.Followers)

	_, err = f.app.UpdateProfile(ctx, "u1", models.ProfileUpdate{Name: "x", Email: "bad"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgEmailInvalid, verr.Message)

	_, err = f.app.UpdateProfile(ctx, "ghost", models.ProfileUpdate{Name: "x"})
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestUpdateProfile_EmailStaysUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	a, err := f.app.RegisterUser(ctx, "A", "a@example.com", "password-a")
	require.NoError(t, err)
	b, err := f.app.RegisterUser(ctx, "B", "b@example.com", "password-b")
	require.NoError(t, err)

	_, err = f.app.UpdateProfile(ctx, b.ID, models.ProfileUpdate{Name: "B", Email: "A@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := f.app.UpdateProfile(ctx, a.ID, models.ProfileUpdate{Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = f.app.Authenticate("a@example.com", "password-a")
	assert.NoError(t, err)
	_, err = f.app.Authenticate("b@example.com", "password-b")
	assert.NoError(t, err)

	got, err = f.app.UpdateProfile(ctx, b.ID, models.ProfileUpdate{Name: "B", Email: "b2@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "b2@example.com", got.Email)
	_, err = f.app.Authenticate("b2@example.com", "password-b")
	assert.NoError(t, err)
}

func TestUserViews_EmailOnlyForSelf(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	u, err := f.app.RegisterUser(ctx, "A", "a@example.com", "password-a")
	require.NoError(t, err)

	pub, err := f.app.User(u.ID)
	require.NoError(t, err)
	assert.Empty(t, pub.Email)
	for _, other := range f.app.Users() {
		assert.Empty(t, other.Email)
		assert.Empty(t, other.PasswordHash)
	}

	own, err := f.app.Account(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", own.Email)
	assert.Empty(t, own.PasswordHash)

	_, err = f.app.Account("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	sessions := storage.NewMemoryStore(time.Hour)
	f := newFixture(t, Options{Sessions: sessions})

	sid, err := f.app.OpenSession(ctx, "u1")
	require.NoError(t, err)
	uid, ok := f.app.ActingUser(ctx, sid)
	assert.True(t, ok)
	assert.Equal(t, "u1", uid)

	assert.False(t, f.app.SplashSeen(ctx, sid))
	f.app.MarkSplashSeen(ctx, sid)
	assert.True(t, f.app.SplashSeen(ctx, sid))

	next, err := f.app.OpenSession(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, f.app.SplashSeen(ctx, next))

	f.app.EndSession(ctx, sid)
	_, ok = f.app.ActingUser(ctx, sid)
	assert.False(t, ok)
	assert.False(t, f.app.SplashSeen(ctx, sid))

	_, err = f.app.OpenSession(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	assert.Equal(t, "dark", f.app.Preferences(ctx, "u1").Theme)
	p, err := f.app.SetPreferences(ctx, "u1", models.Preferences{Theme: "light", OnboardingSeen: true})
	require.NoError(t, err)
	assert.Equal(t, p, f.app.Preferences(ctx, "u1"))

	_, err = f.app.SetPreferences(ctx, "u1", models.Preferences{Theme: "neon"})
	assert.Error(t, err)
}

func TestRegisterDeviceToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	require.NoError(t, f.app.RegisterDeviceToken(ctx, "u1", "tok-a"))
	require.NoError(t, f.app.RegisterDeviceToken(ctx, "u1", "tok-b"))
	require.NoError(t, f.app.RegisterDeviceToken(ctx, "u1", "tok-a"))
	assert.Error(t, f.app.RegisterDeviceToken(ctx, "u1", " "))

	tokens := storage.Load(ctx, f.store, storage.DeviceTokensKey("u1"), []models.DeviceToken(nil))
	require.Len(t, tokens, 2)
	assert.Equal(t, "tok-b", tokens[0].Token)
	assert.Equal(t, "tok-a", tokens[1].Token)
}
