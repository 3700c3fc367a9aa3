package usecase

import (
	"context"

	"telegram-gate-bot/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

// Totals is a count snapshot of the persistent document.
type Totals struct {
	Users    int `json:"users"`
	Admins   int `json:"admins"`
	Banned   int `json:"banned"`
	Channels int `json:"channels"`
	Links    int `json:"links"`
}

type StatsUseCase interface {
	Totals(ctx context.Context) Totals
}

type statsUC struct {
	store repository.StoreRepository
	log   *zerolog.Logger
}

func NewStatsUseCase(store repository.StoreRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{store: store, log: logger}
}

func (s *statsUC) Totals(_ context.Context) Totals {
	doc := s.store.Load()
	return Totals{
		Users:    len(doc.Users),
		Admins:   len(doc.Admins),
		Banned:   len(doc.Banned),
		Channels: len(doc.ChannelIDs),
		Links:    len(doc.ChannelLinks),
	}
}
