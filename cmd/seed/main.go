package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"agentdesk/internal/auth"
	"agentdesk/internal/config"
	"agentdesk/internal/db"
	"agentdesk/internal/model"
	"agentdesk/internal/repository"
)

// seedUser is one demo identity with a sign-in password.
type seedUser struct {
	Name     string
	Email    string
	Password string
}

var seedUsers = []seedUser{
	{Name: "Demo Admin", Email: "admin@example.com", Password: "admin-password-1"},
	{Name: "Demo Visitor", Email: "visitor@example.com", Password: "visitor-password-1"},
}

var seedPosts = []model.Post{
	{Title: "Welcome to AgentDesk", Content: strPtr("AgentDesk pairs a marketing site with a live agent dashboard.")},
	{Title: "What an agent gateway does", Content: strPtr("The gateway relays dashboard tasks to a long-running agent session.")},
	{Title: "Session security notes", Content: strPtr("Sessions are opaque random tokens stored server side and expire after seven days.")},
	{Title: "Roadmap", Content: nil},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Account{}, &model.Session{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	hasher := auth.NewHasher(cfg.SessionSecret)

	ctx := context.Background()

	log.Println("Seeding demo users...")
	created, skipped, err := seedDemoUsers(ctx, userRepo, accountRepo, hasher)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Println("Seeding demo posts...")
	posts, err := seedDemoPosts(ctx, postRepo)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
	log.Printf("  - New posts created: %d", posts)
}

// seedDemoUsers inserts each demo user with a credential account. Users that
// already exist by email are left untouched, so reruns are safe.
func seedDemoUsers(ctx context.Context, users repository.UserRepository, accounts repository.AccountRepository, hasher *auth.Hasher) (created int, skipped int, err error) {
	for _, item := range seedUsers {
		existing, err := users.FindByEmail(ctx, item.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, skipped, fmt.Errorf("error checking user %s: %w", item.Email, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", item.Email)
			skipped++
			continue
		}

		user := &model.User{Name: item.Name, Email: item.Email}
		if err := users.Create(ctx, user); err != nil {
			return created, skipped, fmt.Errorf("error creating user %s: %w", item.Email, err)
		}

		account := &model.Account{
			AccountID:  item.Email,
			ProviderID: model.ProviderCredential,
			UserID:     user.ID,
			Password:   hasher.Hash(item.Password),
		}
		if err := accounts.Create(ctx, account); err != nil {
			return created, skipped, fmt.Errorf("error creating credential for %s: %w", item.Email, err)
		}
		created++
	}
	return created, skipped, nil
}

// seedDemoPosts inserts the demo posts when the posts table is empty.
func seedDemoPosts(ctx context.Context, posts repository.PostRepository) (int, error) {
	existing, err := posts.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing posts: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("Posts table already has %d rows, skipping", len(existing))
		return 0, nil
	}

	created := 0
	for i := range seedPosts {
		post := seedPosts[i]
		if err := posts.Create(ctx, &post); err != nil {
			return created, fmt.Errorf("error creating post %q: %w", post.Title, err)
		}
		created++
	}
	return created, nil
}

func strPtr(s string) *string { return &s }
