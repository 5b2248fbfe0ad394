package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/auth"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

const (
	seedAdminEmail    = "admin@local.test"
	seedAdminPassword = "Admin@123"
	seedAdminName     = "Default Admin"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default admin",
	Long:  `Ensure the default admin account exists so the dashboards can be used on a fresh database.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if clearData {
			if _, err := db.ExecContext(ctx, "TRUNCATE time_logs, attendances RESTART IDENTITY"); err != nil {
				log.Fatalf("failed to clear attendance data: %v", err)
			}
			fmt.Println("Cleared attendance data")
		}

		created, err := seedAdmin(ctx, db, cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		if created {
			fmt.Println("Seeded admin user:", seedAdminEmail)
		} else {
			fmt.Println("admin user already exists:", seedAdminEmail)
		}
	},
}

// seedAdmin inserts the default admin unless the email is already taken.
func seedAdmin(ctx context.Context, db *sqlx.DB, bcryptCost int) (bool, error) {
	var exists bool
	if err := db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", seedAdminEmail); err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := auth.HashPassword(seedAdminPassword, bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	res, err := db.ExecContext(ctx, `
INSERT INTO users (name, email, password_hash, role, salary, join_date, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, 0, CURRENT_DATE, TRUE, now(), now())
ON CONFLICT (email) DO NOTHING`,
		seedAdminName, seedAdminEmail, hash, coreuser.RoleAdmin.String())
	if err != nil {
		return false, fmt.Errorf("insert admin: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert admin: %w", err)
	}
	return n > 0, nil
}
