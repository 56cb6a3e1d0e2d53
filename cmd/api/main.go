package main

import (
	"log"
	"os"

	"goagree/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// gin resolves GIN_MODE before godotenv runs, so apply it again here.
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Starting agreement API on http://localhost:" + port)
	log.Fatal(ui.NewServer().Run(":" + port))
}
