package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"harnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds unsaved domain entities with plausible fake data.
type Factory struct {
	rng *rand.Rand
}

// NewFactory seeds gofakeit and returns a Factory.
func NewFactory() *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// User builds a registered user with a generated handle and the given
// password hash.
func (f *Factory) User(passwordHash string) models.User {
	handle := f.handle()
	email := gofakeit.Email()
	return models.User{
		Handle:       handle,
		PasswordHash: passwordHash,
		Email:        &email,
		Bio:          gofakeit.Sentence(8),
		PictureRef:   fmt.Sprintf("seed-avatar-%s.png", gofakeit.UUID()[:8]),
		CreatedAt:    f.pastTime(90),
	}
}

// Guest builds a guest account. The ordinal keeps generated handles unique
// within a single seeding run.
func (f *Factory) Guest(ordinal int) models.User {
	return models.User{
		Handle:    fmt.Sprintf("Guest_%04d", ordinal),
		Guest:     true,
		CreatedAt: f.pastTime(2),
	}
}

// Post builds a captioned post for the author.
func (f *Factory) Post(authorID uint) models.ContentItem {
	return models.ContentItem{
		AuthorID:  authorID,
		MediaRef:  fmt.Sprintf("seed-%s.jpg", gofakeit.UUID()),
		Caption:   gofakeit.Sentence(f.rng.Intn(12) + 3),
		Kind:      models.ContentKindPost,
		CreatedAt: f.pastTime(60),
	}
}

// Story builds a caption-less story for the author.
func (f *Factory) Story(authorID uint) models.ContentItem {
	return models.ContentItem{
		AuthorID:  authorID,
		MediaRef:  fmt.Sprintf("seed-%s.jpg", gofakeit.UUID()),
		Kind:      models.ContentKindStory,
		CreatedAt: f.pastTime(1),
	}
}

// Comment builds a comment on the item by the author.
func (f *Factory) Comment(contentID, authorID uint) models.Comment {
	return models.Comment{
		ContentID: contentID,
		AuthorID:  authorID,
		Text:      gofakeit.Sentence(f.rng.Intn(10) + 2),
		CreatedAt: f.pastTime(30),
	}
}

// Feedback builds a feedback-board entry by the author.
func (f *Factory) Feedback(authorID uint) models.Feedback {
	templates := []string{
		"Would love to see %s support.",
		"The %s flow feels clunky on mobile.",
		"Please add %s to the profile page.",
		"%s keeps logging me out, can you look into it?",
	}
	subject := strings.ToLower(gofakeit.BuzzWord())
	return models.Feedback{
		AuthorID:  authorID,
		Message:   fmt.Sprintf(templates[f.rng.Intn(len(templates))], subject),
		CreatedAt: f.pastTime(45),
	}
}

// handle generates a handle that satisfies registration rules: letters,
// digits and underscores only, 3-30 characters.
func (f *Factory) handle() string {
	base := strings.ToLower(gofakeit.Username())
	var sb strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		}
	}
	handle := sb.String()
	if len(handle) < 3 {
		handle = "user"
	}
	if len(handle) > 24 {
		handle = handle[:24]
	}
	return fmt.Sprintf("%s%d", handle, f.rng.Intn(10000))
}

// pastTime spreads created_at over the last maxDays days so feeds look
// lived-in.
func (f *Factory) pastTime(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 1
	}
	back := time.Duration(f.rng.Intn(maxDays*24*60)) * time.Minute
	return time.Now().Add(-back)
}
