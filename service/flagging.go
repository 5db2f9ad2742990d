package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/agriassist/agriassist-llm-server/models"
)

var (
	ErrFlaggingDisabled = errors.New("flagging is disabled")
	ErrEmptyFlag        = errors.New("prompt and output are required to flag")
)

func (s *Service) SaveFlag(prompt string, output string, label string) (models.Flag, error) {
	if s.DB == nil {
		return models.Flag{}, ErrFlaggingDisabled
	}
	if strings.TrimSpace(prompt) == "" || strings.TrimSpace(output) == "" {
		return models.Flag{}, ErrEmptyFlag
	}
	flag := models.Flag{Prompt: prompt, Output: output, ModelID: s.Config.ModelID, Label: label}
	if err := s.DB.Create(&flag).Error; err != nil {
		return models.Flag{}, fmt.Errorf("saving flag: %w", err)
	}
	log.Printf("SaveFlag id: %d, label: %s\n", flag.ID, label)
	return flag, nil
}

// RecentFlags returns up to limit flags, newest first.
func (s *Service) RecentFlags(limit int) ([]models.Flag, error) {
	if s.DB == nil {
		return nil, ErrFlaggingDisabled
	}
	var flags []models.Flag
	err := s.DB.Order("created_at desc").Order("id desc").Limit(limit).Find(&flags).Error
	if err != nil {
		return nil, fmt.Errorf("listing flags: %w", err)
	}
	return flags, nil
}
