package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"eventbook/internal/events"
	"eventbook/internal/shared/config"
	"eventbook/internal/shared/database"
	"eventbook/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Eventbook database seeder...")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{"bookings", "events", "users"}
	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	return s.seedEvents()
}

func (s *Seeder) seedUsers() error {
	type seedUser struct {
		name     string
		phone    string
		email    string
		password string
		role     users.Role
	}

	seeds := []seedUser{
		{"Admin", "9000000001", "admin@eventbook.dev", "admin123", users.RoleAdmin},
		{"Asha Rao", "9000000002", "asha@example.com", "password1", users.RoleUser},
		{"Vikram Shah", "9000000003", "vikram@example.com", "password2", users.RoleUser},
		{"Neha Gupta", "9000000004", "neha@example.com", "password3", users.RoleUser},
	}

	for _, u := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.phone, err)
		}

		user := &users.User{
			ID:       uuid.New(),
			Name:     u.name,
			Phone:    u.phone,
			Email:    u.email,
			Password: string(hash),
			Role:     u.role,
		}
		if err := s.db.PostgreSQL.Create(user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.phone, err)
		}
		fmt.Printf("  user %-14s %s (%s)\n", u.name, u.phone, u.role)
	}
	return nil
}

func (s *Seeder) seedEvents() error {
	type seedEvent struct {
		name     string
		kind     string
		desc     string
		daysOut  int
		when     string
		location string
		seats    int
		price    string
	}

	seeds := []seedEvent{
		{"Indie Rock Night", "Concert", "Three local bands, one stage.", 14, "19:30:00", "Mumbai", 250, "499.00"},
		{"Go Meetup", "Tech", "Talks on services and tooling.", 7, "18:00:00", "Bengaluru", 120, "0.00"},
		{"Standup Evening", "Comedy", "Open mic followed by a headliner.", 21, "20:00:00", "Pune", 80, "299.00"},
		{"Food Carnival", "Festival", "Street food from twelve states.", 30, "11:00:00", "Delhi", 800, "150.00"},
	}

	for _, e := range seeds {
		price, err := decimal.NewFromString(e.price)
		if err != nil {
			return fmt.Errorf("invalid seed price %q: %w", e.price, err)
		}

		event := &events.Event{
			ID:             uuid.New(),
			EventName:      e.name,
			EventType:      e.kind,
			Description:    e.desc,
			EventDate:      time.Now().AddDate(0, 0, e.daysOut),
			EventTime:      e.when,
			Location:       e.location,
			TotalSeats:     e.seats,
			AvailableSeats: e.seats,
			Price:          price,
		}
		if err := s.db.PostgreSQL.Create(event).Error; err != nil {
			return fmt.Errorf("failed to seed event %s: %w", e.name, err)
		}
		fmt.Printf("  event %-18s %s, %d seats\n", e.name, e.location, e.seats)
	}
	return nil
}
