package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/storage"
)

var ist = time.FixedZone("IST", 5*3600+1800)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type recordingNotifier struct {
	sent chan models.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n models.Notification, _ models.User) {
	r.sent <- n
}

func fixtureUsers() []models.User {
	return []models.User{
		{ID: "u1", Name: "Ram", Followers: []string{}, Following: []string{}},
		{ID: "u2", Name: "Sita", Followers: []string{}, Following: []string{}},
		{ID: "u3", Name: "Lakshman", Followers: []string{}, Following: []string{}},
	}
}

func fixturePosts() []models.Post {
	return []models.Post{
		{ID: "p1", UploaderID: "u1", Type: models.PostVideo, Title: "Aarti", Likes: []string{}, Comments: []models.Comment{}},
		{ID: "p2", UploaderID: "u2", Type: models.PostNews, Title: "Gita", Description: "Adhyay 1", Likes: []string{"u3"}, Comments: []models.Comment{}},
	}
}

type fixture struct {
	app   *App
	store *storage.MemoryStore
	clock *testClock
}

func newFixture(t *testing.T, opts Options) fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	require.NoError(t, store.Save(ctx, storage.KeyUsers, fixtureUsers()))
	require.NoError(t, store.Save(ctx, storage.KeyPosts, fixturePosts()))

	clock := &testClock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, ist)}
	opts.Store = store
	opts.Location = ist
	opts.Now = clock.Now
	return fixture{app: New(ctx, opts), store: store, clock: clock}
}

func TestNew_SeedsEmptyStore(t *testing.T) {
	a := New(context.Background(), Options{})

	posts := a.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, "post_1", posts[0].ID)
	_, err := a.User(posts[0].UploaderID)
	assert.NoError(t, err)
}

func TestNew_LoadsStoredCollections(t *testing.T) {
	f := newFixture(t, Options{})
	assert.Len(t, f.app.Posts(), 2)
	assert.Len(t, f.app.Users(), 3)
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string, any) (bool, error) { return false, errors.New("disk gone") }
func (brokenStore) Save(context.Context, string, any) error          { return errors.New("quota exceeded") }
func (brokenStore) Delete(context.Context, string) error             { return errors.New("disk gone") }

func TestStorageFailuresKeepMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	a := New(ctx, Options{Store: brokenStore{}})

	post := a.Posts()[0]
	liked, err := a.ToggleLike(ctx, "rambhakt", post.ID)
	require.NoError(t, err)
	assert.False(t, liked.LikedBy("rambhakt"))

	rec, _ := a.JaapTap(ctx, "rambhakt")
	assert.Equal(t, 1, rec.Count)
	assert.Equal(t, 1, a.JaapHistory(ctx, "rambhakt")[0].Count)
}
