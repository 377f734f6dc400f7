package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/voss/wpfleet/internal/model"
)

// SettingService reads and writes key/value application settings.
type SettingService struct {
	db DB
}

func NewSettingService(db DB) *SettingService {
	return &SettingService{db: db}
}

func (s *SettingService) Get(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := s.db.QueryRow(ctx,
		"SELECT key, value FROM settings WHERE key = $1", key,
	).Scan(&setting.Key, &setting.Value)
	if err != nil {
		return nil, fmt.Errorf("get setting %q: %w", key, err)
	}
	return &setting, nil
}

func (s *SettingService) GetAll(ctx context.Context) ([]model.Setting, error) {
	rows, err := s.db.Query(ctx, "SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []model.Setting
	for rows.Next() {
		var setting model.Setting
		if err := rows.Scan(&setting.Key, &setting.Value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return settings, nil
}

func (s *SettingService) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// BaseDomain returns the domain suffix appended to subdomains when
// composing a full site domain. Missing or empty is a configuration
// failure for provisioning.
func (s *SettingService) BaseDomain(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRow(ctx,
		"SELECT value FROM settings WHERE key = $1", model.SettingBaseDomain,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrBaseDomainNotSet
	}
	if err != nil {
		return "", fmt.Errorf("get base domain: %w", err)
	}
	if value == "" {
		return "", ErrBaseDomainNotSet
	}
	return value, nil
}
