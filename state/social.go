package state

import (
	"context"

	"github.com/google/uuid"

	"ramotsav.com/project-ramotsav/models"
)

func (a *App) Users() []models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.User, 0, len(a.users))
	for _, u := range a.users {
		out = append(out, u.Public())
	}
	return out
}

func (a *App) User(id string) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.userIndex(id)
	if i < 0 {
		return models.User{}, ErrNotFound
	}
	return a.users[i].Public(), nil
}

// Account returns the user with their own email intact, for self views.
func (a *App) Account(id string) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.userIndex(id)
	if i < 0 {
		return models.User{}, ErrNotFound
	}
	return a.users[i].Private(), nil
}

// ToggleFollow flips the actor->target edge on both users together and
// reports whether the actor now follows the target.
func (a *App) ToggleFollow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, ErrSelfFollow
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	actor, err := a.requireUser(actorID)
	if err != nil {
		return false, err
	}
	ti := a.userIndex(targetID)
	if ti < 0 {
		return false, ErrNotFound
	}
	actor = actor.Clone()
	target := a.users[ti].Clone()

	following := actor.IsFollowing(targetID)
	if following {
		actor.Following = without(actor.Following, targetID)
		target.Followers = without(target.Followers, actorID)
	} else {
		actor.Following = append(actor.Following, targetID)
		if !target.HasFollower(actorID) {
			target.Followers = append(target.Followers, actorID)
		}
	}
	a.replaceUsers(actor, target)
	a.saveUsers(ctx)

	if !following {
		a.emit(ctx, a.notification(models.NotifyFollow, actorID, targetID, ""))
	}
	return !following, nil
}

func (a *App) notification(t models.NotificationType, from, to, postID string) models.Notification {
	return models.Notification{
		ID:         uuid.NewString(),
		Type:       t,
		FromUserID: from,
		ToUserID:   to,
		PostID:     postID,
		Timestamp:  a.now(),
	}
}

// Notifications lists what was addressed to userID, newest first.
func (a *App) Notifications(userID string) []models.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Notification, 0)
	for _, n := range a.notifications {
		if n.ToUserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (a *App) UnreadCount(userID string) int {
	count := 0
	for _, n := range a.Notifications(userID) {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// MarkAllNotificationsRead marks every notification addressed to userID as
// read and returns how many changed.
func (a *App) MarkAllNotificationsRead(ctx context.Context, userID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	changed := 0
	next := make([]models.Notification, len(a.notifications))
	for i, n := range a.notifications {
		if n.ToUserID == userID && !n.IsRead {
			n.IsRead = true
			changed++
		}
		next[i] = n
	}
	if changed == 0 {
		return 0
	}
	a.notifications = next
	a.saveNotifications(ctx)
	return changed
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
