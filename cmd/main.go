package main

import (
	"fmt"
	"log"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/config"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/routes"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	utils.SetupLogger(cfg.LogLevel)

	if err := config.InitDB(cfg.DatabasePath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	r := routes.SetupRouter()
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
