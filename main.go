package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/agriassist/agriassist-llm-server/bot"
	"github.com/agriassist/agriassist-llm-server/config"
	"github.com/agriassist/agriassist-llm-server/database"
	"github.com/agriassist/agriassist-llm-server/http_server"
	"github.com/agriassist/agriassist-llm-server/service"
	"gorm.io/gorm"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatal("Error loading env files: ", err)
	}
	c, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	var db *gorm.DB
	if c.FlaggingEnabled() {
		db, err = database.Open(c.DBDriver, c.DBDSN)
		if err != nil {
			log.Fatal(err)
		}
	}

	s := service.NewService(c, db)
	log.Println("Application configured to use Hugging Face Inference API.")
	log.Printf("Target Model: %s (%s)\n", c.ModelLabel, c.ModelID)
	log.Printf("API Endpoint: %s\n", c.APIURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.TelegramToken != "" {
		b, err := bot.New(c.TelegramToken, s)
		if err != nil {
			// the form keeps working without the bot
			log.Println(err)
		} else {
			go b.Start(ctx)
		}
	}

	if err := http_server.HandleRequests(ctx, s); err != nil {
		log.Fatal(err)
	}
	log.Println("Shutting down")
}
