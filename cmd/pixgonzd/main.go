package main

import (
	"log"

	"github.com/kritik8/pixgonzDIP/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
