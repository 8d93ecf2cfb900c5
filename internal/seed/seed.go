// Package seed populates the database with demo data for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"harnect/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Plan describes how much data to generate. It can be loaded from a yaml
// file so demo environments are reproducible.
type Plan struct {
	Users           int     `yaml:"users"`
	Guests          int     `yaml:"guests"`
	Posts           int     `yaml:"posts"`
	Stories         int     `yaml:"stories"`
	CommentsPerItem int     `yaml:"comments_per_item"`
	LikeRatio       float64 `yaml:"like_ratio"`
	FollowsPerUser  int     `yaml:"follows_per_user"`
	Feedback        int     `yaml:"feedback"`
	Clean           bool    `yaml:"clean"`
}

// DefaultPlan is a medium-sized demo dataset.
func DefaultPlan() Plan {
	return Plan{
		Users:           50,
		Guests:          5,
		Posts:           200,
		Stories:         40,
		CommentsPerItem: 3,
		LikeRatio:       0.2,
		FollowsPerUser:  8,
		Feedback:        15,
		Clean:           true,
	}
}

// LoadPlan reads a Plan from a yaml file.
func LoadPlan(path string) (Plan, error) {
	plan := DefaultPlan()
	raw, err := os.ReadFile(path)
	if err != nil {
		return plan, fmt.Errorf("read plan file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &plan); err != nil {
		return plan, fmt.Errorf("parse plan file: %w", err)
	}
	return plan, nil
}

// Options tune seeder behavior.
type Options struct {
	// SkipBcrypt replaces password hashing with a fixed marker. Hashing
	// dominates seeding time, so tests turn it off.
	SkipBcrypt bool
}

// Seeder generates and persists demo data.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		opts:    opts,
		factory: NewFactory(),
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// Apply runs the plan top to bottom. Every seeded user shares the password
// "password123".
func (s *Seeder) Apply(plan Plan) error {
	log.Printf("Seeding %d users, %d posts, %d stories...", plan.Users, plan.Posts, plan.Stories)

	if plan.Clean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	users, err := s.seedUsers(plan.Users, plan.Guests)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.Printf("created %d users", len(users))

	items, err := s.seedContent(users, plan.Posts, plan.Stories)
	if err != nil {
		return fmt.Errorf("seed content: %w", err)
	}
	log.Printf("created %d content items", len(items))

	if err := s.seedEngagement(users, items, plan.CommentsPerItem, plan.LikeRatio); err != nil {
		return fmt.Errorf("seed engagement: %w", err)
	}
	if err := s.seedFollows(users, plan.FollowsPerUser); err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}
	if err := s.seedFeedback(users, plan.Feedback); err != nil {
		return fmt.Errorf("seed feedback: %w", err)
	}

	log.Println("Seeding complete. Seeded users log in with password123.")
	return nil
}

// ClearAll removes seeded data in dependency order.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Feedback{},
		&models.ContentItem{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedUsers(registered, guests int) ([]models.User, error) {
	hash := "seeded-password"
	if !s.opts.SkipBcrypt {
		h, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}

	users := make([]models.User, 0, registered+guests)
	for i := 0; i < registered; i++ {
		users = append(users, s.factory.User(hash))
	}
	for i := 0; i < guests; i++ {
		users = append(users, s.factory.Guest(i))
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) seedContent(users []models.User, posts, stories int) ([]models.ContentItem, error) {
	if len(users) == 0 || posts+stories == 0 {
		return nil, nil
	}

	items := make([]models.ContentItem, 0, posts+stories)
	for i := 0; i < posts; i++ {
		author := users[s.rng.Intn(len(users))]
		items = append(items, s.factory.Post(author.ID))
	}
	for i := 0; i < stories; i++ {
		author := users[s.rng.Intn(len(users))]
		items = append(items, s.factory.Story(author.ID))
	}

	if err := s.db.CreateInBatches(&items, 100).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Seeder) seedEngagement(users []models.User, items []models.ContentItem, commentsPerItem int, likeRatio float64) error {
	if len(users) == 0 || len(items) == 0 {
		return nil
	}

	var comments []models.Comment
	for _, item := range items {
		n := s.rng.Intn(commentsPerItem + 1)
		for i := 0; i < n; i++ {
			author := users[s.rng.Intn(len(users))]
			comments = append(comments, s.factory.Comment(item.ID, author.ID))
		}
	}
	if len(comments) > 0 {
		if err := s.db.CreateInBatches(&comments, 200).Error; err != nil {
			return err
		}
	}

	// The unique (user, content) index deduplicates random draws.
	var likes []models.Like
	for _, item := range items {
		for _, user := range users {
			if s.rng.Float64() < likeRatio {
				likes = append(likes, models.Like{UserID: user.ID, ContentID: item.ID})
			}
		}
	}
	if len(likes) > 0 {
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(&likes, 500).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedFollows(users []models.User, perUser int) error {
	if len(users) < 2 || perUser <= 0 {
		return nil
	}

	var edges []models.Follow
	for _, follower := range users {
		for i := 0; i < perUser; i++ {
			followee := users[s.rng.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			edges = append(edges, models.Follow{
				FollowerID: follower.ID,
				FolloweeID: followee.ID,
			})
		}
	}
	if len(edges) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&edges, 500).Error
}

func (s *Seeder) seedFeedback(users []models.User, count int) error {
	if len(users) == 0 || count == 0 {
		return nil
	}

	entries := make([]models.Feedback, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		entries = append(entries, s.factory.Feedback(author.ID))
	}
	return s.db.Create(&entries).Error
}
