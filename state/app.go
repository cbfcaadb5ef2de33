// Package state is the application-state container. It owns the entity
// collections, funnels every change through a named operation and persists
// the full touched collection after each one.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/services"
	"ramotsav.com/project-ramotsav/storage"
)

// Notifier delivers a freshly created notification outside the process.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification, from models.User)
}

// Asker answers chat questions, either at once or as a fragment stream.
type Asker interface {
	Ask(ctx context.Context, q services.Question) services.Answer
}

type Options struct {
	// Store holds durable documents. Sessions holds session-scoped markers
	// and is expected to expire them; it defaults to Store.
	Store    storage.DocumentStore
	Sessions storage.DocumentStore
	// Devices holds push tokens; it defaults to a registry over Store and
	// must be shared with whatever prunes tokens.
	Devices  *storage.DeviceRegistry
	Location *time.Location
	Now      func() time.Time
	Notifier Notifier
	Asker    Asker
	// SkipSeed leaves an empty posts collection empty.
	SkipSeed bool
}

type App struct {
	mu sync.Mutex

	store    storage.DocumentStore
	sessions storage.DocumentStore
	devices  *storage.DeviceRegistry
	loc      *time.Location
	clock    func() time.Time
	notifier Notifier
	asker    Asker
	validate *validator.Validate

	posts         []models.Post
	users         []models.User
	notifications []models.Notification

	saved  map[string][]string
	jaap   map[string][]models.JaapRecord
	lekhan map[string][]models.LekhanRecord
	prefs  map[string]models.Preferences
	chats  map[string][]models.AiChatSession
	active map[string]string
}

// New loads the shared collections and returns a ready container.
func New(ctx context.Context, opts Options) *App {
	a := &App{
		store:    opts.Store,
		sessions: opts.Sessions,
		devices:  opts.Devices,
		loc:      opts.Location,
		clock:    opts.Now,
		notifier: opts.Notifier,
		asker:    opts.Asker,
		validate: newValidator(),
		saved:    make(map[string][]string),
		jaap:     make(map[string][]models.JaapRecord),
		lekhan:   make(map[string][]models.LekhanRecord),
		prefs:    make(map[string]models.Preferences),
		chats:    make(map[string][]models.AiChatSession),
		active:   make(map[string]string),
	}
	if a.store == nil {
		a.store = storage.NewMemoryStore(0)
	}
	if a.sessions == nil {
		a.sessions = a.store
	}
	if a.devices == nil {
		a.devices = storage.NewDeviceRegistry(a.store)
	}
	if a.loc == nil {
		a.loc = time.UTC
	}
	if a.clock == nil {
		a.clock = time.Now
	}

	a.posts = storage.Load(ctx, a.store, storage.KeyPosts, []models.Post{})
	a.users = storage.Load(ctx, a.store, storage.KeyUsers, []models.User{})
	a.notifications = storage.Load(ctx, a.store, storage.KeyNotifications, []models.Notification{})

	if len(a.posts) == 0 && !opts.SkipSeed {
		a.posts, a.users = seedCollections(a.now(), a.users)
		logger.Log.Info("seeded demo content", zap.Int("posts", len(a.posts)), zap.Int("users", len(a.users)))
	}
	return a
}

func (a *App) now() time.Time {
	return a.clock().In(a.loc)
}

func (a *App) today() string {
	return a.now().Format(models.DateLayout)
}

// Now is the container's clock in the configured zone.
func (a *App) Now() time.Time {
	return a.now()
}

func (a *App) savePosts(ctx context.Context) {
	storage.Save(ctx, a.store, storage.KeyPosts, a.posts)
}

func (a *App) saveUsers(ctx context.Context) {
	storage.Save(ctx, a.store, storage.KeyUsers, a.users)
}

func (a *App) saveNotifications(ctx context.Context) {
	storage.Save(ctx, a.store, storage.KeyNotifications, a.notifications)
}

func (a *App) postIndex(id string) int {
	for i, p := range a.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (a *App) userIndex(id string) int {
	for i, u := range a.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (a *App) requireUser(id string) (models.User, error) {
	i := a.userIndex(id)
	if i < 0 {
		return models.User{}, ErrUnknownUser
	}
	return a.users[i], nil
}

// replacePost swaps in an updated copy of the post at i without touching
// the slice other readers may hold.
func (a *App) replacePost(i int, p models.Post) {
	next := make([]models.Post, len(a.posts))
	copy(next, a.posts)
	next[i] = p
	a.posts = next
}

func (a *App) replaceUsers(updates ...models.User) {
	next := make([]models.User, len(a.users))
	copy(next, a.users)
	for _, u := range updates {
		for i := range next {
			if next[i].ID == u.ID {
				next[i] = u
			}
		}
	}
	a.users = next
}

func (a *App) emit(ctx context.Context, n models.Notification) {
	next := make([]models.Notification, 0, len(a.notifications)+1)
	next = append(next, n)
	a.notifications = append(next, a.notifications...)
	a.saveNotifications(ctx)

	if a.notifier == nil {
		return
	}
	from, _ := a.requireUser(n.FromUserID)
	go a.notifier.Notify(context.Background(), n, from.Public())
}
