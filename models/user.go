package models

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Location     string   `json:"location,omitempty"`
	Followers    []string `json:"followers"`
	Following    []string `json:"following"`
	PasswordHash string   `json:"password_hash,omitempty"`
}

// Public is the view other users get: no credentials, no email.
func (u User) Public() User {
	u = u.Private()
	u.Email = ""
	return u
}

// Private is the account holder's own view of themselves.
func (u User) Private() User {
	u.PasswordHash = ""
	return u
}

func (u User) Clone() User {
	c := u
	c.Followers = append([]string{}, u.Followers...)
	c.Following = append([]string{}, u.Following...)
	return c
}

func (u User) IsFollowing(userID string) bool {
	return contains(u.Following, userID)
}

func (u User) HasFollower(userID string) bool {
	return contains(u.Followers, userID)
}

type ProfileUpdate struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio" validate:"max=280"`
	Location  string `json:"location"`
}

type Preferences struct {
	Theme          string `json:"theme"`
	OnboardingSeen bool   `json:"onboarding_seen"`
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
