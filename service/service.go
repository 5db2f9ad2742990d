package service

import (
	"github.com/agriassist/agriassist-llm-server/config"
	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// Service carries the process-wide dependencies. DB is nil unless flagging is
// enabled.
type Service struct {
	Config *config.Config
	Client *resty.Client
	DB     *gorm.DB
}

func NewService(c *config.Config, db *gorm.DB) Service {
	client := resty.New()
	if c.Timeout > 0 {
		client.SetTimeout(c.Timeout)
	}
	return Service{Config: c, Client: client, DB: db}
}
