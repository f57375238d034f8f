package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newID() string { return uuid.New().String() }

func daysAgo(d int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -d)
}

func randBetween(min, max int) int {
	return min + rand.Intn(max-min+1)
}

func pick[T any](items []T) T {
	return items[rand.Intn(len(items))]
}

// ── main ─────────────────────────────────────────────────────────────────────

func main() {
	_ = godotenv.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "jobmatch"),
		envOr("DB_PASSWORD", "jobmatch"),
		envOr("DB_NAME", "jobmatch"),
		envOr("DB_SSL_MODE", "disable"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}
	fmt.Println("connected to database")

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback(ctx)

	// ── clean up previous seed data ──────────────────────────────────────
	const seedSource = "seed"
	_, _ = tx.Exec(ctx, `DELETE FROM vacancies WHERE source = $1`, seedSource)
	_, _ = tx.Exec(ctx, `DELETE FROM profiles WHERE contact_email = $1`, "seed@jobmatch.dev")
	fmt.Println("cleaned previous seed data")

	// ── 1. vacancies ─────────────────────────────────────────────────────
	companies := []string{"Yandex", "Tinkoff", "Avito", "VK", "Ozon"}
	cities := []string{"Moscow", "Saint Petersburg", "Remote", "Novosibirsk"}
	titles := []string{"Senior Go Engineer", "Backend Developer", "Platform Engineer", "DevOps Engineer", "Data Engineer"}
	skillPool := []string{"go", "postgresql", "kubernetes", "redis", "grpc", "kafka", "docker", "python", "terraform", "aws"}

	vacancyIDs := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		vacancyID := newID()
		company := pick(companies)
		title := pick(titles)
		salaryFrom := randBetween(150000, 250000)
		salaryTo := salaryFrom + randBetween(30000, 80000)
		published := daysAgo(randBetween(0, 14))

		_, err := tx.Exec(ctx, `
			INSERT INTO vacancies (
				id, source, external_id, title, company, location,
				salary_from, salary_to, currency, description, url,
				published_at, status, experience, schedule, employment, area,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, now(), now()
			)
		`,
			vacancyID, seedSource, fmt.Sprintf("seed-%d", i), title, company, pick(cities),
			salaryFrom, salaryTo, "RUR",
			fmt.Sprintf("We are looking for a %s to join %s. Experience with %s is a plus.", title, company, pick(skillPool)),
			fmt.Sprintf("https://example.invalid/vacancies/seed-%d", i),
			published, "open", pick([]string{"between1And3", "between3And6", "moreThan6"}), "fullDay", "full", pick(cities),
		)
		must(err, "insert vacancy")
		vacancyIDs = append(vacancyIDs, vacancyID)

		// a handful of requirements per vacancy, matching what
		// modules/requirements would extract from the description
		required := map[string]int{}
		for n := 0; n < 3; n++ {
			required[pick(skillPool)] = randBetween(1, 5)
		}
		for skill, weight := range required {
			_, err := tx.Exec(ctx, `
				INSERT INTO vacancy_requirements (id, vacancy_id, kind, raw_text, normalized_key, weight, is_hard)
				VALUES ($1, $2, 'skill', $3, $4, $5, $6)
				ON CONFLICT (vacancy_id, kind, normalized_key) DO NOTHING
			`, newID(), vacancyID, skill, skill, weight, weight >= 4)
			must(err, "insert vacancy_requirement")
		}
	}
	fmt.Printf("seeded %d vacancies\n", len(vacancyIDs))

	// ── 2. profile ───────────────────────────────────────────────────────
	profileID := newID()
	contactEmail := "seed@jobmatch.dev"
	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (
			id, resume_text, skills_text, location, remote_ok, relocation_ok, salary_min, contact_email,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	`,
		profileID,
		"Senior backend engineer with 6 years of experience building distributed systems in Go, "+
			"including high-throughput ingestion pipelines and recommendation services.",
		"go, postgresql, kubernetes, redis, grpc",
		pick(cities), true, true, 180000, contactEmail,
	)
	must(err, "insert profile")

	_, err = tx.Exec(ctx, `
		INSERT INTO experiences (id, profile_id, company, title, start_date, end_date, is_current, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, newID(), profileID, "Avito", "Senior Go Engineer", daysAgo(900), nil, true, "Owned the job ingestion and matching pipeline.")
	must(err, "insert experience")

	for _, skill := range []string{"go", "postgresql", "kubernetes", "redis", "grpc"} {
		_, err := tx.Exec(ctx, `
			INSERT INTO skills (id, profile_id, name_raw, normalized_key, category, level, years, last_used_year, is_primary, evidence_text)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, newID(), profileID, skill, skill, "backend", "expert", float64(randBetween(2, 6)), time.Now().Year(), true, nil)
		must(err, "insert skill")
	}

	// ── 3. saved search ──────────────────────────────────────────────────
	savedSearchID := newID()
	_, err = tx.Exec(ctx, `
		INSERT INTO saved_searches (
			id, text, area, schedule, experience, salary_from, salary_to, currency,
			filters_json, per_page, pages_limit, cursor_page, is_active,
			last_sync_at, last_seen_published_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now()
		)
	`,
		savedSearchID, "golang backend", "1", "fullDay", "between3And6", 150000, nil, "RUR",
		[]byte(`{}`), 20, 5, 0, true, nil, nil,
	)
	must(err, "insert saved search")

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}

	fmt.Println("seed complete")
	fmt.Printf("  profile:     %s (%s)\n", profileID, contactEmail)
	fmt.Printf("  saved search: %s\n", savedSearchID)
}

func must(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %v", msg, err)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
