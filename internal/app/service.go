package app

import (
	"fmt"

	"github.com/shrimpsizemoose/kateder/internal/store"
)

type Service struct {
	Config   *Config
	Store    store.Store
	Sessions *SessionCache
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	sessions, err := NewSessionCache(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init session cache: %w", err)
	}

	return &Service{
		Config:   config,
		Store:    store,
		Sessions: sessions,
	}, nil
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Sessions.Close(); err != nil {
		errs = append(errs, fmt.Errorf("session cache: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
