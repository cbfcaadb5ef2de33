package state

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/storage"
)

const minPasswordLength = 8

func (a *App) RegisterUser(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return models.User{}, invalid(msgNameRequired)
	}
	if err := a.validate.Var(email, "required,email"); err != nil {
		return models.User{}, invalid(msgEmailInvalid)
	}
	if len(password) < minPasswordLength {
		return models.User{}, invalid(msgPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, u := range a.users {
		if u.Email == email {
			return models.User{}, ErrEmailTaken
		}
	}
	u := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Followers:    []string{},
		Following:    []string{},
		PasswordHash: string(hash),
	}
	next := make([]models.User, 0, len(a.users)+1)
	next = append(next, a.users...)
	a.users = append(next, u)
	a.saveUsers(ctx)
	return u.Private(), nil
}

func (a *App) Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a.mu.Lock()
	var found *models.User
	for i := range a.users {
		if a.users[i].Email == email && a.users[i].PasswordHash != "" {
			u := a.users[i]
			found = &u
			break
		}
	}
	a.mu.Unlock()

	if found == nil {
		return models.User{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrBadCredentials
	}
	return found.Private(), nil
}

// UpdateProfile replaces the editable profile fields. Follow edges are
// left alone.
func (a *App) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (models.User, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = strings.ToLower(strings.TrimSpace(upd.Email))
	if err := a.validate.Struct(upd); err != nil {
		return models.User{}, profileError(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	u, err := a.requireUser(userID)
	if err != nil {
		return models.User{}, err
	}
	switch {
	case upd.Email == "" && u.PasswordHash != "":
		// Email is the login key; a blank update keeps it.
		upd.Email = u.Email
	case upd.Email != "" && upd.Email != u.Email:
		for _, other := range a.users {
			if other.ID != userID && other.Email == upd.Email {
				return models.User{}, ErrEmailTaken
			}
		}
	}
	u = u.Clone()
	u.Name = upd.Name
	u.Email = upd.Email
	u.AvatarURL = upd.AvatarURL
	u.Bio = upd.Bio
	u.Location = upd.Location
	a.replaceUsers(u)
	a.saveUsers(ctx)
	return u.Private(), nil
}

// OpenSession starts a fresh session for userID. Splash and viewed-post
// markers are keyed by session, so a new session starts with neither.
func (a *App) OpenSession(ctx context.Context, userID string) (string, error) {
	a.mu.Lock()
	_, err := a.requireUser(userID)
	a.mu.Unlock()
	if err != nil {
		return "", err
	}
	sid := uuid.NewString()
	storage.Save(ctx, a.sessions, storage.ActingUserKey(sid), userID)
	return sid, nil
}

// ActingUser resolves the user a live session acts as.
func (a *App) ActingUser(ctx context.Context, sessionID string) (string, bool) {
	id := storage.Load(ctx, a.sessions, storage.ActingUserKey(sessionID), "")
	return id, id != ""
}

func (a *App) EndSession(ctx context.Context, sessionID string) {
	for _, key := range []string{
		storage.ActingUserKey(sessionID),
		storage.SplashSeenKey(sessionID),
		storage.ViewedPostsKey(sessionID),
	} {
		_ = a.sessions.Delete(ctx, key)
	}
}

func (a *App) SplashSeen(ctx context.Context, sessionID string) bool {
	return storage.Load(ctx, a.sessions, storage.SplashSeenKey(sessionID), false)
}

func (a *App) MarkSplashSeen(ctx context.Context, sessionID string) {
	storage.Save(ctx, a.sessions, storage.SplashSeenKey(sessionID), true)
}

func (a *App) Preferences(ctx context.Context, userID string) models.Preferences {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.prefsFor(ctx, userID)
}

func (a *App) prefsFor(ctx context.Context, userID string) models.Preferences {
	p, ok := a.prefs[userID]
	if !ok {
		p = storage.Load(ctx, a.store, storage.PreferencesKey(userID), models.Preferences{Theme: "dark"})
		a.prefs[userID] = p
	}
	return p
}

func (a *App) SetPreferences(ctx context.Context, userID string, p models.Preferences) (models.Preferences, error) {
	if p.Theme != "light" && p.Theme != "dark" {
		return models.Preferences{}, invalid("Theme must be light or dark.")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prefs[userID] = p
	storage.Save(ctx, a.store, storage.PreferencesKey(userID), p)
	return p, nil
}

// RegisterDeviceToken records a push token for userID, refreshing its
// timestamp when already known.
func (a *App) RegisterDeviceToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return invalid("Device token is required.")
	}

	a.devices.Register(ctx, userID, token, a.now().Truncate(time.Second))
	return nil
}
