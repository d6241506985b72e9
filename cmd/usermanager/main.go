// Command usermanager is the operator tool for managing catalog accounts:
// creating users with explicit roles, listing them, changing roles and
// passwords, deleting accounts, and seeding the default admin on first run.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bookmanager/catalog-api/internal/core/ports"
	"github.com/bookmanager/catalog-api/internal/core/service"
	"github.com/bookmanager/catalog-api/internal/infrastructure/config"
	mongodb "github.com/bookmanager/catalog-api/internal/infrastructure/db/mongo"
	"github.com/bookmanager/catalog-api/internal/pkg/password"
	"github.com/bookmanager/catalog-api/pkg/logger"
)

const usage = `Usage: usermanager <command> [flags]

Commands:
  create        Create a user (--username --email --password --full-name [--role])
  list          List all users
  set-role      Change a user's role (--username --role)
  set-password  Change a user's password (--username --password)
  delete        Delete a user (--username --yes)
  seed          Create the default admin and a sample user if no users exist
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: "warn", Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		fatal("connect to database: %v", err)
	}
	defer client.Disconnect(ctx)

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		fatal("create indexes: %v", err)
	}

	admin := service.NewAdminService(users, password.NewHasher(cfg.BcryptCost), log)

	switch os.Args[1] {
	case "create":
		runCreate(ctx, admin, os.Args[2:])
	case "list":
		runList(ctx, admin)
	case "set-role":
		runSetRole(ctx, admin, os.Args[2:])
	case "set-password":
		runSetPassword(ctx, admin, os.Args[2:])
	case "delete":
		runDelete(ctx, admin, os.Args[2:])
	case "seed":
		runSeed(ctx, admin, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runCreate(ctx context.Context, admin ports.AdminService, args []string) {
	fs := pflag.NewFlagSet("create", pflag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	email := fs.String("email", "", "email (required)")
	pass := fs.String("password", "", "password (required)")
	fullName := fs.String("full-name", "", "display name (required)")
	role := fs.String("role", "user", "role: admin or user")
	_ = fs.Parse(args)

	user, err := admin.CreateUser(ctx, ports.CreateUserInput{
		Username: *username,
		Email:    *email,
		Password: *pass,
		FullName: *fullName,
		Role:     *role,
	})
	if err != nil {
		fatal("create user: %v", err)
	}

	fmt.Println("User created!")
	fmt.Println("Username:", user.Username)
	fmt.Println("Email:   ", user.Email)
	fmt.Println("Role:    ", user.Role)
}

func runList(ctx context.Context, admin ports.AdminService) {
	users, err := admin.ListUsers(ctx)
	if err != nil {
		fatal("list users: %v", err)
	}
	if len(users) == 0 {
		fmt.Println("No users found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tROLE\tEMAIL\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Username, u.Role, u.Email, u.CreatedAt.Format(time.RFC3339))
	}
	w.Flush()
	fmt.Printf("\nTotal: %d\n", len(users))
}

func runSetRole(ctx context.Context, admin ports.AdminService, args []string) {
	fs := pflag.NewFlagSet("set-role", pflag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	role := fs.String("role", "", "new role: admin or user (required)")
	_ = fs.Parse(args)

	if err := admin.ChangeRole(ctx, *username, *role); err != nil {
		fatal("change role: %v", err)
	}
	fmt.Printf("Role updated! %s is now %s\n", *username, *role)
}

func runSetPassword(ctx context.Context, admin ports.AdminService, args []string) {
	fs := pflag.NewFlagSet("set-password", pflag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	pass := fs.String("password", "", "new password (required)")
	_ = fs.Parse(args)

	if err := admin.SetPassword(ctx, *username, *pass); err != nil {
		fatal("set password: %v", err)
	}
	fmt.Println("Password updated!")
}

func runDelete(ctx context.Context, admin ports.AdminService, args []string) {
	fs := pflag.NewFlagSet("delete", pflag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	yes := fs.Bool("yes", false, "confirm deletion")
	_ = fs.Parse(args)

	if !*yes {
		fatal("refusing to delete %q without --yes", *username)
	}
	if err := admin.DeleteUser(ctx, *username); err != nil {
		fatal("delete user: %v", err)
	}
	fmt.Println("User deleted")
}

func runSeed(ctx context.Context, admin ports.AdminService, args []string) {
	fs := pflag.NewFlagSet("seed", pflag.ExitOnError)
	adminPass := fs.String("admin-password", "Admin@123", "password for the default admin")
	samplePass := fs.String("sample-password", "Test@123", "password for the sample user")
	_ = fs.Parse(args)

	created, err := admin.Seed(ctx, []ports.SeedUser{
		{Username: "admin", Email: "admin@bookmanager.com", Password: *adminPass, FullName: "Administrator", Role: "admin"},
		{Username: "testuser", Email: "test@bookmanager.com", Password: *samplePass, FullName: "Test User", Role: "user"},
	})
	if err != nil {
		fatal("seed: %v", err)
	}
	if created == nil {
		fmt.Println("Users already exist, nothing to do")
		return
	}

	fmt.Println("Setup complete! Created:")
	for _, u := range created {
		fmt.Printf("  %s (%s)\n", u.Username, u.Role)
	}
	fmt.Println("\nChange the default passwords after first login!")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
