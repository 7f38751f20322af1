// Command server runs the coderecall HTTP API: catalog reconciliation,
// spaced-repetition scheduling, statistics and bulk export/import.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/akulichev/coderecall-backend/internal/app"
)

func main() {
	// Local development convenience; a missing .env file is not an error.
	_ = godotenv.Load()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
