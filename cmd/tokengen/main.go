// Command tokengen mints a signed session token for local development
// and testing against a dev server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"snipvault/pkg/auth"
)

func main() {
	userID := flag.String("user", "dev-user", "user ID (sub claim)")
	name := flag.String("name", "Dev User", "display name")
	email := flag.String("email", "dev@example.com", "email address")
	role := flag.String("role", "user", "role (user or admin)")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "local-development-secret"
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "snipvault"
	}

	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     secret,
		Issuer:        issuer,
		ExpiryTime:    *expiry,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}

	token, err := generator.GenerateToken(*userID, *name, *email, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
