package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/varunrevoori/harmony/internal/config"
	"github.com/varunrevoori/harmony/internal/db"
)

// simulate fires concurrent booking requests for the same provider slot and
// reports how many won. With the booking lock and conflict re-check in
// place, exactly one should.

type SimConfig struct {
	APIBaseURL string
	Workers    int
	Date       string
	StartTime  string
	EndTime    string
}

func loadSimConfig() SimConfig {
	sc := SimConfig{
		APIBaseURL: "http://127.0.0.1:8080",
		Workers:    10,
		Date:       time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		StartTime:  "09:00",
		EndTime:    "10:00",
	}
	if v := os.Getenv("SIM_API_BASE_URL"); v != "" {
		sc.APIBaseURL = v
	}
	if v := os.Getenv("SIM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sc.Workers = n
		}
	}
	if v := os.Getenv("SIM_DATE"); v != "" {
		sc.Date = v
	}
	if v := os.Getenv("SIM_START_TIME"); v != "" {
		sc.StartTime = v
	}
	if v := os.Getenv("SIM_END_TIME"); v != "" {
		sc.EndTime = v
	}
	return sc
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulate starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	sc := loadSimConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	providerID, err := pickProvider(ctx, pool)
	if err != nil {
		log.Fatalf("pick provider: %v", err)
	}
	userIDs, err := pickUsers(ctx, pool, sc.Workers)
	if err != nil {
		log.Fatalf("pick users: %v", err)
	}

	log.Printf("racing %d users for provider=%s slot=%s %s-%s",
		len(userIDs), providerID, sc.Date, sc.StartTime, sc.EndTime)

	client := &http.Client{Timeout: 10 * time.Second}

	var (
		wg        sync.WaitGroup
		won       atomic.Int64
		conflicts atomic.Int64
		contended atomic.Int64
		failures  atomic.Int64
	)

	start := time.Now()
	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()

			token, err := mintToken(cfg.JWTSecret, userID)
			if err != nil {
				log.Printf("mint token: %v", err)
				failures.Add(1)
				return
			}

			status, body, err := book(client, sc, token, providerID)
			if err != nil {
				log.Printf("request error: %v", err)
				failures.Add(1)
				return
			}

			switch status {
			case http.StatusCreated:
				won.Add(1)
			case http.StatusConflict:
				var resp struct {
					Error string `json:"error"`
				}
				_ = json.Unmarshal(body, &resp)
				if resp.Error == "booking_in_progress" {
					contended.Add(1)
				} else {
					conflicts.Add(1)
				}
			default:
				log.Printf("unexpected status %d: %s", status, body)
				failures.Add(1)
			}
		}(userID)
	}
	wg.Wait()

	log.Printf("done in %s: won=%d conflicts=%d contended=%d failures=%d",
		time.Since(start), won.Load(), conflicts.Load(), contended.Load(), failures.Load())

	if won.Load() == 1 {
		log.Println("OK: exactly one booking won the race")
	} else {
		log.Printf("PROBLEM: expected exactly 1 winner, got %d", won.Load())
		os.Exit(1)
	}
}

func pickProvider(ctx context.Context, pool *pgxpool.Pool) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		SELECT id FROM providers WHERE is_verified = true LIMIT 1
	`).Scan(&id)
	return id, err
}

func pickUsers(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, `
		SELECT id FROM users WHERE role = 'END_USER' AND is_active LIMIT $1
	`, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) < count {
		return nil, fmt.Errorf("only %d users available, need %d (run seed first)", len(ids), count)
	}
	return ids, nil
}

func mintToken(secret string, userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": "END_USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func book(client *http.Client, sc SimConfig, token string, providerID uuid.UUID) (int, []byte, error) {
	payload, err := json.Marshal(map[string]string{
		"provider_id": providerID.String(),
		"date":        sc.Date,
		"start_time":  sc.StartTime,
		"end_time":    sc.EndTime,
	})
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, sc.APIBaseURL+"/api/user/appointments", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
