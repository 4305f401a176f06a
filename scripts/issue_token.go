package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/johnquangdev/meeting-notes/pkg/config"
	pkgjwt "github.com/johnquangdev/meeting-notes/pkg/jwt"
)

// Mints a bearer token for local API testing. Run with the same
// JWT_SECRET the server uses:
//
//	go run ./scripts -subject alice -name "Alice"
func main() {
	subject := flag.String("subject", "dev", "token subject")
	name := flag.String("name", "", "display name claim")
	migrateFlag := flag.Bool("migrate", false, "apply database migrations instead")
	flag.Parse()

	if *migrateFlag {
		runMigrations()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is not set; the API runs unauthenticated and needs no token")
	}

	manager := pkgjwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	token, err := manager.Generate(*subject, *name)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
