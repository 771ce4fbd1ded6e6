package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kwatts/networth/internal/models"
	"github.com/kwatts/networth/internal/repository"
	"github.com/kwatts/networth/internal/validate"
)

const assetsStateKey = "assets"

var (
	ErrAssetNotFound  = errors.New("asset not found")
	ErrDuplicateAsset = errors.New("asset with this id already exists")
	ErrIDMismatch     = errors.New("asset id in body does not match resource id")
)

// AssetService manages the persisted asset list. The list is stored as a
// single JSON blob, newest first; edits are full replacements of a record,
// never partial in-place updates.
type AssetService struct {
	stateRepo *repository.StateRepository
}

// NewAssetService creates a new AssetService
func NewAssetService(stateRepo *repository.StateRepository) *AssetService {
	return &AssetService{stateRepo: stateRepo}
}

// List returns all assets, newest first.
func (s *AssetService) List(ctx context.Context) ([]models.Asset, error) {
	blob, ok, err := s.stateRepo.Load(ctx, assetsStateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	if !ok {
		return []models.Asset{}, nil
	}
	var assets []models.Asset
	if err := json.Unmarshal(blob, &assets); err != nil {
		return nil, fmt.Errorf("failed to decode stored assets: %w", err)
	}
	return assets, nil
}

// Get returns a single asset by id.
func (s *AssetService) Get(ctx context.Context, id string) (models.Asset, error) {
	assets, err := s.List(ctx)
	if err != nil {
		return models.Asset{}, err
	}
	for _, a := range assets {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Asset{}, ErrAssetNotFound
}

// Add validates a raw record and prepends it to the list.
func (s *AssetService) Add(ctx context.Context, raw map[string]any) (models.Asset, error) {
	asset, err := validate.ValidateAsset(raw)
	if err != nil {
		return models.Asset{}, err
	}

	assets, err := s.List(ctx)
	if err != nil {
		return models.Asset{}, err
	}
	for _, existing := range assets {
		if existing.ID == asset.ID {
			return models.Asset{}, ErrDuplicateAsset
		}
	}

	assets = append([]models.Asset{asset}, assets...)
	if err := s.save(ctx, assets); err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

// Replace validates a raw record and swaps it in for the asset with the
// given id. A body id, when present, must match.
func (s *AssetService) Replace(ctx context.Context, id string, raw map[string]any) (models.Asset, error) {
	if bodyID, ok := raw["id"].(string); ok && bodyID != "" && bodyID != id {
		return models.Asset{}, ErrIDMismatch
	}
	raw["id"] = id

	asset, err := validate.ValidateAsset(raw)
	if err != nil {
		return models.Asset{}, err
	}

	assets, err := s.List(ctx)
	if err != nil {
		return models.Asset{}, err
	}
	for i := range assets {
		if assets[i].ID == id {
			assets[i] = asset
			if err := s.save(ctx, assets); err != nil {
				return models.Asset{}, err
			}
			return asset, nil
		}
	}
	return models.Asset{}, ErrAssetNotFound
}

// ReplaceAll validates a raw batch and replaces the whole list with it.
// Any invalid record rejects the entire batch.
func (s *AssetService) ReplaceAll(ctx context.Context, raws []map[string]any) ([]models.Asset, error) {
	assets, err := validate.ValidateAssets(raws)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// Remove deletes an asset by id.
func (s *AssetService) Remove(ctx context.Context, id string) error {
	assets, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(assets) {
		return ErrAssetNotFound
	}
	return s.save(ctx, kept)
}

// Reset clears the asset list.
func (s *AssetService) Reset(ctx context.Context) error {
	if err := s.stateRepo.Delete(ctx, assetsStateKey); err != nil {
		return fmt.Errorf("failed to reset assets: %w", err)
	}
	return nil
}

func (s *AssetService) save(ctx context.Context, assets []models.Asset) error {
	blob, err := json.Marshal(assets)
	if err != nil {
		return fmt.Errorf("failed to encode assets: %w", err)
	}
	if err := s.stateRepo.Save(ctx, assetsStateKey, blob); err != nil {
		return fmt.Errorf("failed to save assets: %w", err)
	}
	return nil
}
