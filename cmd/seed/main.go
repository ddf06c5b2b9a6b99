package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"userauth/internal/application/auth"
	"userauth/internal/config"
	"userauth/internal/domain"
)

func main() {
	cfg := config.Load()

	dsn := flag.String("dsn", cfg.DatabaseURL, "database url")
	username := flag.String("username", envOr("SEED_USERNAME", "demo"), "username to seed")
	email := flag.String("email", envOr("SEED_EMAIL", "demo@userauth.local"), "email of the seeded user")
	password := flag.String("password", envOr("SEED_PASSWORD", "password"), "plaintext password")
	age := flag.Int("age", 0, "age of the seeded user (0 = not set)")
	city := flag.String("city", "", "city of the seeded user")
	country := flag.String("country", "", "country of the seeded user")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DSN required via flag -dsn or DATABASE_URL env")
	}

	req, err := seedRequest(*username, *email, *password, *age, *city, *country)
	if err != nil {
		log.Fatal(err)
	}

	hasher, err := newSeedHasher(cfg)
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Cannot ping DB:", err)
	}

	seedUser(context.Background(), db, hasher, req)
}

// seedRequest applies the same rules as POST /register.
func seedRequest(username, email, password string, age int, city, country string) (domain.RegisterRequest, error) {
	req := domain.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		City:     city,
		Country:  country,
	}
	if age != 0 {
		req.Age = &age
	}
	if res := auth.ValidateRegistration(req); !res.IsValid {
		return domain.RegisterRequest{}, fmt.Errorf("invalid seed user: %s", strings.Join(res.Errors, ", "))
	}
	return req, nil
}

func newSeedHasher(cfg *config.Config) (*auth.BcryptHasher, error) {
	return auth.NewBcryptHasher(cfg.BcryptCost, 1, nil)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func seedUser(ctx context.Context, db *sql.DB, hasher domain.PasswordHasher, req domain.RegisterRequest) {
	hashed, err := hasher.Hash(ctx, req.Password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, age, city, country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (username) DO UPDATE
		SET email = excluded.email,
			password_hash = excluded.password_hash,
			age = excluded.age,
			city = excluded.city,
			country = excluded.country;
	`

	_, err = db.ExecContext(ctx, query,
		uuid.NewString(), req.Username, req.Email, hashed, req.Age, req.City, req.Country, time.Now().UTC())
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	fmt.Printf("User seeded: %s <%s>\n", req.Username, req.Email)
}
