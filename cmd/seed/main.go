package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"folio/internal/auth"
	"folio/internal/config"
	"folio/internal/db"
	"folio/internal/model"
	"folio/internal/repository"
	"folio/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set to seed")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Experience{},
		&model.Education{},
		&model.Project{},
		&model.Certification{},
		&model.BlogPost{},
		&model.ContactMessage{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	blogRepo := repository.NewBlogRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(userRepo, profileRepo, jwtService, auth.NewTokenStore(nil), cfg.LoginMaxAttempts, cfg.LoginLockWindow)
	profileService := service.NewProfileService(profileRepo)
	blogService := service.NewBlogService(blogRepo, nil)

	ctx := context.Background()

	admin, err := ensureAdmin(ctx, authService, userRepo, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	if err := seedProfile(ctx, profileService, admin); err != nil {
		log.Fatalf("Failed to seed profile: %v", err)
	}

	created, skipped, err := seedPosts(ctx, blogService, blogRepo, admin)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Println("Seed completed successfully!")
	log.Printf("  - Posts created: %d", created)
	log.Printf("  - Posts already present: %d", skipped)
}

// ensureAdmin registers the admin account, or returns the existing one.
func ensureAdmin(ctx context.Context, authService service.AuthService, userRepo repository.UserRepository, email, password string) (*model.User, error) {
	existing, err := userRepo.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("Admin account already exists: %s", email)
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, _, err := authService.Register(ctx, email, password, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	log.Printf("Admin account created: %s", email)
	return user, nil
}

// seedProfile fills the admin CV with sample content so the public
// profile endpoint has something to show.
func seedProfile(ctx context.Context, profileService service.ProfileService, admin *model.User) error {
	firstName := "Jordan"
	lastName := "Reyes"
	title := "Software Engineer"
	location := "Berlin, Germany"
	bio := "Backend engineer focused on reliable web services and developer tooling."

	_, err := profileService.UpdateProfile(ctx, admin.ID, service.UpdateProfileInput{
		PersonalInfo: &service.PersonalInfoInput{
			FirstName: &firstName,
			LastName:  &lastName,
			Title:     &title,
			Location:  &location,
			Bio:       &bio,
		},
		Skills: &model.SkillSet{
			Technical: []model.Skill{
				{Name: "Go", Level: "advanced"},
				{Name: "MySQL", Level: "advanced"},
				{Name: "Redis", Level: "intermediate"},
			},
			Soft: []model.Skill{
				{Name: "Technical writing"},
				{Name: "Mentoring"},
			},
			Languages: []model.Language{
				{Name: "English", Proficiency: "fluent"},
				{Name: "German", Proficiency: "intermediate"},
			},
		},
	})
	if err != nil {
		return err
	}

	profile, err := profileService.GetProfile(ctx, admin.ID)
	if err != nil {
		return err
	}
	if len(profile.Experience) > 0 {
		log.Println("Profile entries already present, skipping")
		return nil
	}

	start := time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)
	if _, err := profileService.AddExperience(ctx, admin.ID, service.ExperienceInput{
		Company:      "Acme Web Services",
		Position:     "Senior Backend Engineer",
		Location:     "Berlin, Germany",
		StartDate:    start,
		Description:  "Built and operated the public API platform.",
		Technologies: []string{"Go", "MySQL", "Redis"},
		IsCurrent:    true,
	}); err != nil {
		return err
	}

	eduStart := time.Date(2014, time.September, 1, 0, 0, 0, 0, time.UTC)
	eduEnd := time.Date(2018, time.June, 30, 0, 0, 0, 0, time.UTC)
	if _, err := profileService.AddEducation(ctx, admin.ID, service.EducationInput{
		Institution: "Technical University of Berlin",
		Degree:      "BSc",
		Field:       "Computer Science",
		StartDate:   eduStart,
		EndDate:     &eduEnd,
	}); err != nil {
		return err
	}

	if _, err := profileService.AddProject(ctx, admin.ID, service.ProjectInput{
		Title:        "folio",
		Description:  "This portfolio and blog backend.",
		Technologies: []string{"Go", "Echo", "GORM"},
		GithubURL:    "https://github.com/jordanreyes/folio",
		Featured:     true,
	}); err != nil {
		return err
	}

	log.Println("Profile seeded")
	return nil
}

var samplePosts = []service.CreatePostInput{
	{
		Title:    "Getting Started with Go Web Services",
		Excerpt:  "A practical walk through standing up an HTTP API in Go.",
		Content:  sampleBody("Go's standard library gets you a long way, but a small framework keeps handlers tidy once routing, validation, and middleware pile up. This post walks through the layout this project uses: handlers bind and validate, services own the rules, repositories talk to the database."),
		Category: model.CategoryBackend,
		Tags:     []string{"go", "web", "api"},
		Published: true,
		Featured:  true,
	},
	{
		Title:    "Caching Strategies for Read-Heavy APIs",
		Excerpt:  "When to cache, what to cache, and how to invalidate without tears.",
		Content:  sampleBody("Blog posts are read far more often than they are written, which makes them a natural fit for a short-TTL cache in front of the database. The trick is invalidation: every write path has to know which keys it dirties, including renames that move content to a new slug."),
		Category: model.CategoryBackend,
		Tags:     []string{"redis", "caching", "performance"},
		Published: true,
	},
	{
		Title:    "Notes on Account Lockout",
		Excerpt:  "Designing brute-force protection that fails safe.",
		Content:  sampleBody("Counting failed logins sounds trivial until you consider expiry. A lock that never clears punishes a user who fat-fingered a password five times last month. The window has to reset, the counter has to restart after an expired lock, and a correct password while locked must still be refused."),
		Category: model.CategoryOpinion,
		Tags:     []string{"security", "auth"},
		// Draft: only visible on the admin listing.
		Published: false,
	},
}

// seedPosts inserts the sample posts, skipping any whose slug is taken.
func seedPosts(ctx context.Context, blogService service.BlogService, blogRepo repository.BlogRepository, admin *model.User) (created, skipped int, err error) {
	for _, in := range samplePosts {
		taken, err := blogRepo.SlugExists(ctx, service.Slugify(in.Title), uuid.Nil)
		if err != nil {
			return created, skipped, err
		}
		if taken {
			skipped++
			continue
		}
		if _, err := blogService.CreatePost(ctx, admin.ID, in); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}

// sampleBody pads a paragraph so seeded posts clear the minimum content
// length enforced on the create endpoint.
func sampleBody(paragraph string) string {
	return paragraph + "\n\nThe rest of this post goes into the details, with code samples and the trade-offs behind each decision. Read on for the full write-up."
}
