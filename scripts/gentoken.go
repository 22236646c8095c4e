package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"employee-onboarding-backend/internal/delivery/http/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

// Prints an invite token for one new hire, signed with ONBOARDING_JWT_SECRET.
func main() {
	subject := flag.String("sub", "", "invitee id (required)")
	email := flag.String("email", "", "invitee email")
	ttl := flag.Duration("ttl", 7*24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("ONBOARDING_JWT_SECRET")
	if secret == "" || *subject == "" {
		fmt.Fprintln(os.Stderr, "usage: ONBOARDING_JWT_SECRET=... go run ./scripts -sub <invitee-id> [-email addr] [-ttl 168h]")
		os.Exit(2)
	}

	token, err := middleware.IssueInviteToken(secret, *subject, *email, jwt.NewNumericDate(time.Now().Add(*ttl)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
