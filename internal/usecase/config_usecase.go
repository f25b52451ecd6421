package usecase

import (
	"context"

	"effettobot/internal/domain/repository"
)

type ConfigUseCase struct {
	configRepo repository.ConfigRepository
}

func NewConfigUseCase(configRepo repository.ConfigRepository) *ConfigUseCase {
	return &ConfigUseCase{
		configRepo: configRepo,
	}
}

func (uc *ConfigUseCase) Set(ctx context.Context, key, value string) error {
	return uc.configRepo.Set(ctx, key, value)
}

// SetMany writes every pair; entries with empty values are skipped so
// optional /setup arguments leave existing configuration alone.
func (uc *ConfigUseCase) SetMany(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if value == "" {
			continue
		}
		if err := uc.configRepo.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Get returns "" for unset keys.
func (uc *ConfigUseCase) Get(ctx context.Context, key string) (string, error) {
	return uc.configRepo.Get(ctx, key)
}

func (uc *ConfigUseCase) GetAll(ctx context.Context) (map[string]string, error) {
	return uc.configRepo.GetAll(ctx)
}
