package main

import (
	"fmt"

	"taskfront/internal/api"
	"taskfront/internal/config"
)

func withClient(cfg *config.Config, fn func(*api.Client) error) error {
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}
	if cfg.APIURL == "" {
		return fmt.Errorf("api url is required")
	}
	return fn(api.NewClient(cfg.APIURL))
}
