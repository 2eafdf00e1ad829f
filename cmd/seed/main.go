package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/varunrevoori/harmony/internal/appointment"
	"github.com/varunrevoori/harmony/internal/availability"
	"github.com/varunrevoori/harmony/internal/db"
	"github.com/varunrevoori/harmony/internal/timeutil"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	log.Println("schema ready")

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedAdmin(context.Background(), pool); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	providerIDs, err := seedProviders(context.Background(), pool, 50)
	if err != nil {
		log.Fatalf("seed providers: %v", err)
	}
	if err := seedRules(context.Background(), pool, providerIDs); err != nil {
		log.Fatalf("seed rules: %v", err)
	}
	if err := seedUsers(context.Background(), pool, 2000); err != nil {
		log.Fatalf("seed users: %v", err)
	}

	log.Println("seed complete")
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, name, email, role, is_active, created_at, updated_at)
		VALUES ($1, 'Platform Admin', 'admin@harmony.local', $2, true, now(), now())
		ON CONFLICT (email) DO NOTHING
	`, uuid.New(), appointment.RoleSystemAdmin)
	return err
}

func seedProviders(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d providers", count)

	serviceTypes := []string{
		"consultation",
		"haircut",
		"massage",
		"tutoring",
		"legal advice",
		"personal training",
		"therapy",
		"photography",
		"tax preparation",
		"career coaching",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		userID := uuid.New()
		name := gofakeit.Name()

		email := fmt.Sprintf("p%d.%s", i, gofakeit.Email())

		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, role, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, true, now(), now())
		`, userID, name, email, appointment.RoleServiceProvider)
		if err != nil {
			return nil, err
		}

		providerID := uuid.New()
		serviceType := serviceTypes[gofakeit.Number(0, len(serviceTypes)-1)]
		slotDuration := []int{30, 45, 60}[gofakeit.Number(0, 2)]

		_, err = tx.Exec(ctx, `
			INSERT INTO providers (
				id, user_id, business_name, service_type, base_price, currency,
				slot_duration, max_appointments_per_day, require_approval_late_reschedule,
				is_verified, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, 'USD', $6, $7, $8, true, now(), now())
		`, providerID, userID, gofakeit.Company(), serviceType,
			float64(gofakeit.Number(20, 200)), slotDuration,
			gofakeit.Number(4, 12), gofakeit.Bool())
		if err != nil {
			return nil, err
		}

		ids = append(ids, providerID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("providers seeded")
	return ids, nil
}

func seedRules(ctx context.Context, pool *pgxpool.Pool, providerIDs []uuid.UUID) error {
	log.Printf("seeding weekly rules for %d providers", len(providerIDs))

	weekdays := []string{
		timeutil.Monday,
		timeutil.Tuesday,
		timeutil.Wednesday,
		timeutil.Thursday,
		timeutil.Friday,
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, providerID := range providerIDs {
		for _, day := range weekdays {
			windows := []availability.TimeWindow{
				{StartTime: "09:00", EndTime: "12:00"},
				{StartTime: "13:00", EndTime: "17:00"},
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO availability_rules (id, provider_id, day_of_week, time_windows, is_active, exception_dates, priority, created_at, updated_at)
				VALUES ($1, $2, $3, $4, true, '[]', 0, now(), now())
			`, uuid.New(), providerID, day, windows)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("rules seeded")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d users", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		email := fmt.Sprintf("u%d.%s", i, gofakeit.Email())

		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, role, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, true, now(), now())
		`, uuid.New(), gofakeit.Name(), email, appointment.RoleEndUser)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("users seeded")
	return nil
}
