package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/progressclasses/classes-backend/internal/config"
	"github.com/progressclasses/classes-backend/internal/database"
	"github.com/progressclasses/classes-backend/internal/logger"
	"github.com/progressclasses/classes-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt ignores anything past 72 bytes
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	adminAuthRepo := repository.NewAdminAuthRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	fmt.Println("=== Set Admin Password ===")

	password, err := readPassword("Enter new admin password: ")
	if err != nil {
		fmt.Println("\nError reading password")
		os.Exit(1)
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		fmt.Printf("Error: Password must be between %d and %d characters\n", minPasswordLength, maxPasswordLength)
		os.Exit(1)
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fmt.Println("\nError reading password")
		os.Exit(1)
	}
	if !bytes.Equal(password, confirm) {
		fmt.Println("Error: Passwords do not match")
		os.Exit(1)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hash, err := bcrypt.GenerateFromPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	if err := adminAuthRepo.UpsertPasswordHash(ctx, string(hash)); err != nil {
		log.Fatal().Err(err).Msg("Failed to store admin password")
	}

	log.Info().Int("bcrypt_cost", cfg.BcryptCost).Msg("Admin password updated")
	fmt.Println("\nSuccess! The admin password has been set. Existing tokens stay valid until they expire.")
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return b, err
}
