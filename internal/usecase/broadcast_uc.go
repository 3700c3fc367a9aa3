package usecase

import (
	"context"
	"errors"
	"strings"

	"telegram-gate-bot/internal/domain"
	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/domain/ports/adapter"
	"telegram-gate-bot/internal/domain/ports/repository"
	"telegram-gate-bot/internal/infra/logging"
	"telegram-gate-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ BroadcastUseCase = (*broadcastUC)(nil)

type BroadcastUseCase interface {
	// Broadcast re-sends the payload to every known user, one at a
	// time, and reports the tallies. There is no resume: a run that is
	// interrupted must be started over from the top.
	Broadcast(ctx context.Context, payload model.BroadcastPayload) (model.BroadcastReport, error)
}

type broadcastUC struct {
	store repository.StoreRepository
	chat  adapter.ChatClient
	log   *zerolog.Logger
}

func NewBroadcastUseCase(store repository.StoreRepository, chat adapter.ChatClient, logger *zerolog.Logger) *broadcastUC {
	return &broadcastUC{store: store, chat: chat, log: logger}
}

func (u *broadcastUC) Broadcast(ctx context.Context, payload model.BroadcastPayload) (model.BroadcastReport, error) {
	defer logging.TraceDuration(u.log, "BroadcastUC.Broadcast")()

	if payload.IsEmpty() {
		return model.BroadcastReport{}, domain.ErrInvalidInput
	}

	doc := u.store.Load()
	recipients := append([]int64{}, doc.Users...)
	prune := doc.Setting(model.SettingPruneBlocked, true)

	report := model.BroadcastReport{Total: len(recipients)}
	u.log.Info().Int("recipients", report.Total).Msg("broadcast started")

	for _, id := range recipients {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := u.send(ctx, id, payload); err != nil {
			report.Failed++
			metrics.BroadcastMessages.WithLabelValues("failed").Inc()
			u.log.Warn().Err(err).Int64("tg_id", id).Msg("broadcast delivery failed")
			if prune && isUnreachable(err) {
				if rmErr := u.store.RemoveUser(id); rmErr == nil {
					report.Pruned++
					metrics.BroadcastMessages.WithLabelValues("pruned").Inc()
				} else if !errors.Is(rmErr, domain.ErrNotFound) {
					u.log.Warn().Err(rmErr).Int64("tg_id", id).Msg("prune unreachable recipient")
				}
			}
			continue
		}
		report.Sent++
		metrics.BroadcastMessages.WithLabelValues("sent").Inc()
	}

	u.log.Info().Int("sent", report.Sent).Int("failed", report.Failed).Int("pruned", report.Pruned).Msg("broadcast finished")
	return report, nil
}

func (u *broadcastUC) send(ctx context.Context, chatID int64, p model.BroadcastPayload) error {
	switch {
	case p.PhotoID != "":
		_, err := u.chat.SendPhoto(ctx, adapter.SendPhotoParams{ChatID: chatID, FileID: p.PhotoID, Caption: p.Text})
		return err
	case p.DocumentID != "":
		_, err := u.chat.SendDocument(ctx, adapter.SendDocumentParams{ChatID: chatID, FileID: p.DocumentID, Caption: p.Text})
		return err
	default:
		_, err := u.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: chatID, Text: p.Text})
		return err
	}
}

// isUnreachable matches the platform error strings that mean the
// recipient can never be delivered to again.
func isUnreachable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "blocked") ||
		strings.Contains(msg, "chat not found") ||
		strings.Contains(msg, "deactivated")
}
