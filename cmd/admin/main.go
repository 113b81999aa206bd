package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/config"
	"blog-backend/internal/database"
	"blog-backend/internal/models"
	"blog-backend/internal/services"
)

const usage = `Usage: admin <command> [flags]

Commands:
  create-admin  -username <name> -email <addr> -password <pw>
  promote       -email <addr>
  list-users
  migrate       [-dir up|down]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := database.Init(cfg.DSN())
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch os.Args[1] {
	case "create-admin":
		createAdmin(db, os.Args[2:])
	case "promote":
		promote(db, os.Args[2:])
	case "list-users":
		listUsers(db)
	case "migrate":
		runMigrations(db, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func createAdmin(db *database.DB, args []string) {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	username := fs.String("username", "", "admin username")
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	fs.Parse(args)

	if *username == "" || *email == "" || *password == "" {
		fmt.Println("Error: -username, -email and -password are required")
		os.Exit(1)
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	query := `
		insert into users (username, email, password_hash, role)
		values ($1, $2, $3, $4)
	`
	if _, err := db.Exec(query, *username, *email, string(bytes), models.UserRoleAdmin); err != nil {
		fmt.Printf("Error creating admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Admin user %q created successfully\n", *username)
}

func promote(db *database.DB, args []string) {
	fs := flag.NewFlagSet("promote", flag.ExitOnError)
	email := fs.String("email", "", "email of the user to promote")
	fs.Parse(args)

	if *email == "" {
		fmt.Println("Error: -email is required")
		os.Exit(1)
	}

	res, err := db.Exec("update users set role = $1 where email = $2 and is_active = true", models.UserRoleAdmin, *email)
	if err != nil {
		fmt.Printf("Error promoting user: %v\n", err)
		os.Exit(1)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		fmt.Printf("No active user with email %q\n", *email)
		os.Exit(1)
	}
	fmt.Printf("User %q promoted to admin\n", *email)
}

func listUsers(db *database.DB) {
	users, err := services.NewUserService(db).ListUsers(services.UserFilter{})
	if err != nil {
		fmt.Printf("Error listing users: %v\n", err)
		os.Exit(1)
	}
	if len(users) == 0 {
		fmt.Println("No users found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.Role, u.IsActive)
	}
	w.Flush()
}

func runMigrations(db *database.DB, args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dir := fs.String("dir", "up", "migration direction: up or down")
	fs.Parse(args)

	var err error
	switch *dir {
	case "up":
		err = db.Migrate("migrations")
	case "down":
		err = db.MigrateDown("migrations")
	default:
		fmt.Printf("Unknown migration direction %q\n", *dir)
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Error running migrations: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migrations completed successfully")
}
