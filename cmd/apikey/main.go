package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"hotelbooking/internal/auth"
	"hotelbooking/pkg/config"
)

const JobName = "apikey"

func main() {
	email := flag.String("email", "", "email of the user the token belongs to (created if missing)")
	name := flag.String("name", "", "display name used when the user is created")
	tokenName := flag.String("token-name", "api", "label stored with the token")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: apikey -email admin@example.com [-name Admin] [-token-name api]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	issuer := auth.NewIssuer(auth.NewMongoUserRepository(cfg), auth.NewMongoTokenRepository(cfg), cfg.Log)
	plaintext, _, err := issuer.Issue(ctx, *email, *name, *tokenName)
	if err != nil {
		cfg.Log.Error("Failed to issue API token", "error", err)
		return
	}

	// The plaintext is not stored anywhere; print it once for the operator.
	fmt.Println(plaintext)
}
