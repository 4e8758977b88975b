package main

import (
	"log"

	"github.com/joho/godotenv"

	"yoyboard/internal/config"
	"yoyboard/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	app, err := ui.NewApp(ui.Config{
		Port:          cfg.Server.Port,
		MaxUploadSize: cfg.Upload.MaxFileSizeBytes(),
		SampleEnabled: cfg.Sample.Enabled,
	})
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting health expenditure dashboard on http://localhost:%s", cfg.Server.Port)
	log.Fatal(app.Start())
}
