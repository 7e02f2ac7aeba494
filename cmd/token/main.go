// Command token prints an access token for a seeded user, for local use
// against the API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/config"
	"github.com/cmlabs-hris/hris-admin-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "USR-001", "seed user id")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.AcceptableSkew)
	if err != nil {
		slog.Error("Failed to initialize jwt service", "error", err)
		os.Exit(1)
	}

	for _, u := range fixtures.Users() {
		if u.ID != *userID {
			continue
		}
		token, expiresAt, err := JWTService.GenerateAccessToken(u)
		if err != nil {
			slog.Error("Failed to generate token", "error", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "%s (%s) until %s\n", u.Name, u.Role, time.Unix(expiresAt, 0).Format(time.RFC3339))
		fmt.Println(token)
		return
	}

	slog.Error("Unknown seed user", "user_id", *userID)
	os.Exit(1)
}
