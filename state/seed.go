package state

import (
	"time"

	"ramotsav.com/project-ramotsav/models"
)

const cdn = "https://storage.googleapis.com/static.aiforkids.com/ramotsav/"

var seedUsers = []models.User{
	{ID: "mandir-admin", Name: "Mandir Admin", Location: "Ayodhya"},
	{ID: "geeta-gyan", Name: "Geeta Gyan"},
	{ID: "bhajan-premi", Name: "Bhajan Premi"},
	{ID: "rambhakt", Name: "RamBhakt", Bio: "Jai Shri Ram"},
	{ID: "admin", Name: "Admin"},
	{ID: "sitafan", Name: "SitaFan"},
	{ID: "geetafan", Name: "GeetaFan"},
}

func seedPosts(now time.Time) []models.Post {
	return []models.Post{
		{
			ID:          "post_1",
			UploaderID:  "mandir-admin",
			Type:        models.PostVideo,
			URL:         cdn + "ram_aarti.mp4",
			Title:       "Ayodhya Ram Mandir Aarti",
			Description: "Subah ki aarti, Ram Mandir, Ayodhya.",
			Likes:       []string{"rambhakt", "admin", "sitafan"},
			Comments: []models.Comment{
				{ID: "c1", AuthorID: "rambhakt", Text: "Jai Shri Ram!"},
				{ID: "c2", AuthorID: "sitafan", Text: "Manmohak drishya!"},
			},
			Timestamp: now.Add(-24 * time.Hour),
		},
		{
			ID:         "post_2",
			UploaderID: "geeta-gyan",
			Type:       models.PostNews,
			URL:        "https://i.pinimg.com/originals/9e/11/a9/9e11a91c28c29b7a475514f762643793.jpg",
			Title:      "Shrimad Bhagavad Gita - Adhyay 1",
			Description: "Arjuna Vishada Yoga (Arjuna's Dilemma)\n\n" +
				"The first chapter of the Bhagavad Gita introduces the scene, the setting, the characters, " +
				"and the circumstances that led to the epic battle of Kurukshetra. It describes in detail the " +
				"armies on both sides and their principal warriors. As the two armies stand ready for battle, " +
				"Arjuna, the mighty warrior, sees his dear friends, relatives, and teachers on both sides. " +
				"Overcome by grief and compassion, he fails in his determination to fight. He is confused about " +
				"what is right and wrong and feels weak and helpless. He lays down his bow and arrows and turns " +
				"to his charioteer, Lord Krishna, for guidance.",
			Likes:     []string{"rambhakt", "geetafan"},
			Comments:  []models.Comment{},
			Timestamp: now.Add(-48 * time.Hour),
		},
		{
			ID:          "post_3",
			UploaderID:  "bhajan-premi",
			Type:        models.PostAudio,
			URL:         cdn + "ram_siya_ram.mp3",
			Title:       "Ram Siya Ram",
			Description: "A beautiful bhajan by Sachet Tandon.",
			Likes:       []string{"rambhakt"},
			Comments:    []models.Comment{},
			Timestamp:   now.Add(-72 * time.Hour),
		},
	}
}

// seedCollections returns demo posts and the users they reference, keeping
// any users that already exist.
func seedCollections(now time.Time, existing []models.User) ([]models.Post, []models.User) {
	users := append([]models.User{}, existing...)
	for _, su := range seedUsers {
		found := false
		for _, u := range users {
			if u.ID == su.ID {
				found = true
				break
			}
		}
		if !found {
			users = append(users, su.Clone())
		}
	}
	return seedPosts(now), users
}
