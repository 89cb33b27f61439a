package main

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/motorline/partsbot/internal/catalog"
	"github.com/motorline/partsbot/internal/chatlog"
	"github.com/motorline/partsbot/internal/config"
	"github.com/motorline/partsbot/internal/db"
	"github.com/motorline/partsbot/internal/dialog"
	"github.com/motorline/partsbot/internal/enquiry"
	"github.com/motorline/partsbot/internal/fallback"
	"github.com/motorline/partsbot/internal/locations"
	"github.com/motorline/partsbot/internal/session"
)

// openFromConfig loads the config file and opens its database.
func openFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	gormDB, err := db.Open(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}

// buildDispatcher wires the full dialog engine from config: static catalog
// and directory fixtures, the enquiry store, the conversation log, and the
// optional free-form fallback. The returned store owns the TTL sweeper when
// one is configured.
func buildDispatcher(cfg *config.Config, gormDB *gorm.DB) (*dialog.Dispatcher, *session.Store, *enquiry.Store, error) {
	enquiries, err := enquiry.NewStore(gormDB)
	if err != nil {
		return nil, nil, nil, err
	}
	recorder, err := chatlog.NewRecorder(gormDB)
	if err != nil {
		return nil, nil, nil, err
	}

	sessions := session.NewStore()
	if cfg.Session.TTL > 0 {
		schedule := fmt.Sprintf("@every %s", cfg.Session.SweepEvery)
		if err := sessions.StartSweeper(schedule, cfg.Session.TTL); err != nil {
			return nil, nil, nil, err
		}
	}

	vehicles := make([]dialog.Vehicle, len(cfg.Models))
	for i, m := range cfg.Models {
		vehicles[i] = dialog.Vehicle{ID: m.ID, Name: m.Name}
	}

	var responder dialog.Responder
	if key := cfg.APIKey(); key != "" {
		client, err := fallback.New(fallback.Opts{
			APIKey:  key,
			BaseURL: cfg.Fallback.BaseURL,
			Model:   cfg.Fallback.Model,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		responder = client
	}

	d, err := dialog.New(dialog.Opts{
		Sessions:  sessions,
		Catalog:   catalog.NewStatic(),
		Locations: locations.NewStatic(),
		Enquiries: enquiries,
		Recorder:  recorder,
		Fallback:  responder,
		Vehicles:  vehicles,
	})
	if err != nil {
		sessions.StopSweeper()
		return nil, nil, nil, err
	}
	return d, sessions, enquiries, nil
}
