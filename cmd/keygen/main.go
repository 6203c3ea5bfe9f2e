package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"keygate.backend/pkg/crypto"
	"keygate.backend/pkg/jwt"
)

// keygen generates API key material offline for operators seeding keys out
// of band, and can mint a dev session token for exercising the dashboard
// endpoints locally.
func main() {
	devToken := flag.Bool("dev-token", false, "also mint a dev session token")
	jwtSecret := flag.String("jwt-secret", "change-this-in-production", "secret for the dev session token")
	ownerIDStr := flag.String("owner-id", "", "owner id for the dev session token (random if empty)")
	flag.Parse()

	key, err := crypto.GenerateKey()
	if err != nil {
		log.Fatalf("failed to generate key: %v", err)
	}

	fmt.Println("Generated API key")
	fmt.Printf("KEY=%s\n", key.Plaintext)
	fmt.Printf("KEY_HASH=%s\n", key.Hash)
	fmt.Printf("KEY_MASKED=%s\n", key.Masked)

	if !*devToken {
		return
	}

	ownerID := uuid.New()
	if *ownerIDStr != "" {
		ownerID, err = uuid.Parse(*ownerIDStr)
		if err != nil {
			log.Fatalf("invalid owner-id: %v", err)
		}
	}

	token, err := jwt.NewJWTService(*jwtSecret, 24*time.Hour).GenerateToken(ownerID, "dev@keygate.local")
	if err != nil {
		log.Fatalf("failed to mint dev token: %v", err)
	}

	fmt.Println("Dev session token")
	fmt.Printf("OWNER_ID=%s\n", ownerID)
	fmt.Printf("TOKEN=%s\n", token)
}
