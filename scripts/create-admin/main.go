package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/oklog/ulid/v2"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
)

const adminEmail = "admin@example.com"

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/roibeauty.db"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	store, err := storage.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	q := store.Queries

	user, err := q.GetUserByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		if user.Role == auth.RoleAdmin {
			fmt.Printf("%s is already an admin\n", adminEmail)
			break
		}
		if _, err := q.UpdateUserRole(ctx, db.UpdateUserRoleParams{Role: auth.RoleAdmin, ID: user.ID}); err != nil {
			log.Fatalf("Failed to promote user: %v", err)
		}
		fmt.Printf("Promoted %s to admin\n", adminEmail)

	case errors.Is(err, sql.ErrNoRows):
		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		id := ulid.Make().String()
		if err := q.CreateUser(ctx, db.CreateUserParams{
			ID:           id,
			Name:         "Admin User",
			Email:        adminEmail,
			PasswordHash: hash,
			Role:         auth.RoleAdmin,
		}); err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		if err := q.VerifyUserEmail(ctx, id); err != nil {
			log.Fatalf("Failed to verify admin: %v", err)
		}
		fmt.Printf("Created admin %s\n", adminEmail)

	default:
		log.Fatalf("Failed to look up admin: %v", err)
	}

	admins, err := q.ListAdmins(ctx)
	if err != nil {
		log.Fatalf("Failed to list admins: %v", err)
	}
	fmt.Println("Admins:")
	for _, a := range admins {
		fmt.Printf("  %s <%s>\n", a.Name, a.Email)
	}
}
