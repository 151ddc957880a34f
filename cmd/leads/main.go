// cmd/leads/main.go
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
