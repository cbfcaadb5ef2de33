package state

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
	"ramotsav.com/project-ramotsav/models"
	"ramotsav.com/project-ramotsav/storage"
)

// Section names the view a client should show after an operation.
type Section string

const SectionHome Section = "home"

// placeholderMediaURL stands in for a news post published without a file.
const placeholderMediaURL = "https://picsum.photos/800/600"

func (a *App) Posts() []models.Post {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.posts
}

func (a *App) Post(id string) (models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.postIndex(id)
	if i < 0 {
		return models.Post{}, ErrNotFound
	}
	return a.posts[i], nil
}

// ToggleLike flips the actor's like. Only the not-liked to liked transition
// on someone else's post notifies the owner.
func (a *App) ToggleLike(ctx context.Context, actorID, postID string) (models.Post, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireUser(actorID); err != nil {
		return models.Post{}, err
	}
	i := a.postIndex(postID)
	if i < 0 {
		return models.Post{}, ErrNotFound
	}

	p := a.posts[i].Clone()
	liked := p.LikedBy(actorID)
	if liked {
		likes := make([]string, 0, len(p.Likes))
		for _, id := range p.Likes {
			if id != actorID {
				likes = append(likes, id)
			}
		}
		p.Likes = likes
	} else {
		p.Likes = append(p.Likes, actorID)
	}
	a.replacePost(i, p)
	a.savePosts(ctx)

	if !liked && actorID != p.UploaderID {
		a.emit(ctx, a.notification(models.NotifyLike, actorID, p.UploaderID, p.ID))
	}
	return p, nil
}

func (a *App) AddComment(ctx context.Context, actorID, postID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, invalid("Comment cannot be empty.")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireUser(actorID); err != nil {
		return models.Comment{}, err
	}
	i := a.postIndex(postID)
	if i < 0 {
		return models.Comment{}, ErrNotFound
	}

	c := models.Comment{ID: uuid.NewString(), AuthorID: actorID, Text: text}
	p := a.posts[i].Clone()
	p.Comments = append(p.Comments, c)
	a.replacePost(i, p)
	a.savePosts(ctx)

	if actorID != p.UploaderID {
		a.emit(ctx, a.notification(models.NotifyComment, actorID, p.UploaderID, p.ID))
	}
	return c, nil
}

// DeletePost removes the post for good. Nothing changes unless confirm is
// set and the actor uploaded the post.
func (a *App) DeletePost(ctx context.Context, actorID, postID string, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.postIndex(postID)
	if i < 0 {
		return ErrNotFound
	}
	if a.posts[i].UploaderID != actorID {
		return ErrForbidden
	}

	next := make([]models.Post, 0, len(a.posts)-1)
	next = append(next, a.posts[:i]...)
	a.posts = append(next, a.posts[i+1:]...)
	a.savePosts(ctx)

	logger.Log.Info("post deleted", zap.String("post_id", postID), zap.String("user_id", actorID))
	return nil
}

func (a *App) SavedPosts(ctx context.Context, actorID string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.savedFor(ctx, actorID)
}

func (a *App) savedFor(ctx context.Context, userID string) []string {
	ids, ok := a.saved[userID]
	if !ok {
		ids = storage.Load(ctx, a.store, storage.SavedPostsKey(userID), []string{})
		a.saved[userID] = ids
	}
	return ids
}

// ToggleSave flips a personal bookmark and reports whether the post is now
// saved.
func (a *App) ToggleSave(ctx context.Context, actorID, postID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	current := a.savedFor(ctx, actorID)
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, id := range current {
		if id == postID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, postID)
	}
	a.saved[actorID] = next
	storage.Save(ctx, a.store, storage.SavedPostsKey(actorID), next)
	return !removed
}

// IncrementView counts a view at most once per session. It reports whether
// this call counted.
func (a *App) IncrementView(ctx context.Context, sessionID, postID string) (models.Post, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.postIndex(postID)
	if i < 0 {
		return models.Post{}, false, ErrNotFound
	}

	key := storage.ViewedPostsKey(sessionID)
	seen := storage.Load(ctx, a.sessions, key, []string{})
	for _, id := range seen {
		if id == postID {
			return a.posts[i], false, nil
		}
	}

	p := a.posts[i].Clone()
	p.Views++
	a.replacePost(i, p)
	a.savePosts(ctx)
	storage.Save(ctx, a.sessions, key, append(seen, postID))
	return p, true, nil
}

// ValidateDraft trims a draft and checks it against the publishing rules
// without touching any collection.
func (a *App) ValidateDraft(draft models.PostDraft) (models.PostDraft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.URL = strings.TrimSpace(draft.URL)
	if err := a.validate.Struct(draft); err != nil {
		return draft, draftError(err)
	}
	return draft, nil
}

// CreatePost publishes a draft at the top of the collection and tells the
// client to return to the home feed.
func (a *App) CreatePost(ctx context.Context, actorID string, draft models.PostDraft) (models.Post, Section, error) {
	draft, err := a.ValidateDraft(draft)
	if err != nil {
		return models.Post{}, "", err
	}
	if draft.Type == models.PostNews && draft.URL == "" {
		draft.URL = placeholderMediaURL
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireUser(actorID); err != nil {
		return models.Post{}, "", err
	}

	p := models.Post{
		ID:           uuid.NewString(),
		UploaderID:   actorID,
		Type:         draft.Type,
		URL:          draft.URL,
		ThumbnailURL: draft.ThumbnailURL,
		Title:        draft.Title,
		Description:  draft.Description,
		Likes:        []string{},
		Comments:     []models.Comment{},
		Timestamp:    a.now(),
	}
	next := make([]models.Post, 0, len(a.posts)+1)
	next = append(next, p)
	a.posts = append(next, a.posts...)
	a.savePosts(ctx)

	logger.Log.Info("post created", zap.String("post_id", p.ID), zap.String("type", string(p.Type)))
	return p, SectionHome, nil
}
