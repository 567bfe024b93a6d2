package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"aitravel/internal/config"
	"aitravel/internal/infra"
	"aitravel/internal/models/request_models"
	"aitravel/internal/repositories"
	"aitravel/internal/services"
	"aitravel/pkg/utils"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	driver := fs.String("db-driver", "", "Database driver: postgres or sqlite (defaults to DB_DRIVER, then sqlite)")
	dsn := fs.String("dsn", "", "Postgres URL or sqlite file path (defaults to POSTGRES_URL or SQLITE_PATH)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> -email <email> [-password <password>] [-db-driver <driver>] [-dsn <dsn>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user, email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	cfg := databaseConfig(*driver, *dsn)
	db, err := infra.OpenDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer infra.CloseDatabase(db)

	// Register never issues tokens, so the signing secret is irrelevant here.
	accounts := services.NewAccountService(repositories.NewUserRepository(db), utils.NewTokenManager("adduser", "", 0))
	user, err := accounts.Register(context.Background(), request_models.RegisterRequest{
		Username:        *username,
		Email:           *email,
		Password:        password,
		ConfirmPassword: password,
	})
	switch {
	case errors.Is(err, utils.ErrUsernameTaken):
		return fmt.Errorf("user %s already exists", *username)
	case errors.Is(err, utils.ErrEmailTaken):
		return fmt.Errorf("email %s already exists", *email)
	case err != nil:
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Username, user.ID)
	return nil
}

func databaseConfig(driver, dsn string) config.Config {
	cfg := config.Config{
		DBDriver:    strings.ToLower(strings.TrimSpace(driver)),
		DatabaseURL: os.Getenv("POSTGRES_URL"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = strings.ToLower(os.Getenv("DB_DRIVER"))
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = config.DriverSQLite
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "travel.db"
	}

	if dsn != "" {
		if cfg.DBDriver == config.DriverPostgres {
			cfg.DatabaseURL = dsn
		} else {
			cfg.SQLitePath = dsn
		}
	}
	return cfg
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
