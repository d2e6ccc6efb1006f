package service

import (
	"context"
	"fmt"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

type WindowStorage interface {
	LatestPoints(ctx context.Context, limit int64) (model.WindowSnapshot, error)
}

// TrendService provides rolling-window sentiment data for the API
type TrendService struct {
	storage WindowStorage
}

// NewTrendService creates a new trend service
func NewTrendService(storage WindowStorage) *TrendService {
	return &TrendService{
		storage: storage,
	}
}

// GetWindow returns the last 'limit' points of the rolling window
// (limit 0 means everything the window holds).
func (ts *TrendService) GetWindow(ctx context.Context, limit int64) (model.WindowSnapshot, error) {
	snapshot, err := ts.storage.LatestPoints(ctx, limit)
	if err != nil {
		return model.WindowSnapshot{}, fmt.Errorf("failed to get latest points: %w", err)
	}

	return snapshot, nil
}
