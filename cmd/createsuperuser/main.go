package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"wfm/internal/adapter/repo"
	"wfm/internal/infra"
	"wfm/internal/mail"
	"wfm/internal/service"
)

func main() {
	var (
		emailFlag string
		firstFlag string
		lastFlag  string
	)

	flag.StringVar(&emailFlag, "email", "", "login email of the new superuser")
	flag.StringVar(&firstFlag, "first-name", "", "first name")
	flag.StringVar(&lastFlag, "last-name", "", "last name")
	flag.Parse()

	email := strings.TrimSpace(emailFlag)
	if email == "" {
		exitWithError(errors.New("-email is required"))
	}
	first := strings.TrimSpace(firstFlag)
	if first == "" {
		first = strings.Split(email, "@")[0]
	}

	// The password is read from the environment or stdin so it stays out of
	// shell history.
	password := os.Getenv("SUPERUSER_PASSWORD")
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			exitWithError(fmt.Errorf("read password: %w", err))
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		exitWithError(errors.New("password must not be empty"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "createsuperuser").Logger()
	runner := infra.NewSQLRunner(pool, logger)
	users := service.NewUserService(repo.NewUserRepository(runner), mail.LogMailer{Logger: logger}, "", logger)

	u, err := users.CreateSuperuser(ctx, service.NewUser{
		Email:     email,
		Password:  password,
		FirstName: first,
		LastName:  strings.TrimSpace(lastFlag),
	})
	if err != nil {
		exitWithError(fmt.Errorf("failed to create superuser: %w", err))
	}
	fmt.Printf("Superuser %s (%s) created\n", u.ID, u.Email)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
