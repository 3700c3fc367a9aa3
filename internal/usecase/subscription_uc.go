package usecase

import (
	"context"

	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/domain/ports/adapter"
	"telegram-gate-bot/internal/domain/ports/repository"
	"telegram-gate-bot/internal/infra/logging"
	"telegram-gate-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// SubscriptionUseCase decides whether a user passes the channel gate.
//
// The verdict is fail-closed: a channel whose lookup errors counts as
// not-subscribed for that channel, and nothing short of a positive
// membership status ever grants access.
type SubscriptionUseCase interface {
	// Check returns the tagged per-channel results for the user.
	Check(ctx context.Context, userID int64) []model.ChannelCheck
	// IsSubscribed folds Check down to the gate verdict: true iff at
	// least one channel reports an active membership.
	IsSubscribed(ctx context.Context, userID int64) bool
}

type subscriptionUC struct {
	store    repository.StoreRepository
	chat     adapter.ChatClient
	required model.ChannelRef // fixed handle checked in addition to the stored ids
	log      *zerolog.Logger
}

func NewSubscriptionUseCase(store repository.StoreRepository, chat adapter.ChatClient, required model.ChannelRef, logger *zerolog.Logger) *subscriptionUC {
	return &subscriptionUC{store: store, chat: chat, required: required, log: logger}
}

func (u *subscriptionUC) Check(ctx context.Context, userID int64) []model.ChannelCheck {
	defer logging.TraceDuration(u.log, "SubscriptionUC.Check")()

	doc := u.store.Load()
	channels := make([]model.ChannelRef, 0, len(doc.ChannelIDs)+1)
	if u.required != "" {
		channels = append(channels, u.required)
	}
	channels = append(channels, doc.ChannelIDs...)

	results := make([]model.ChannelCheck, 0, len(channels))
	for _, ch := range channels {
		res := model.ChannelCheck{Channel: ch}
		status, err := u.chat.ChatMemberStatus(ctx, ch, userID)
		if err != nil {
			// A failed lookup (bot not admin, channel gone, network)
			// must not block the remaining channels.
			res.Outcome = model.MembershipCheckError
			res.Err = err
			u.log.Warn().Err(err).Str("channel", ch.String()).Int64("tg_id", userID).Msg("membership lookup failed")
		} else {
			res.Status = status
			res.Outcome = model.ClassifyMemberStatus(status)
		}
		metrics.ChannelLookups.WithLabelValues(res.Outcome.String()).Inc()
		results = append(results, res)
	}
	return results
}

func (u *subscriptionUC) IsSubscribed(ctx context.Context, userID int64) bool {
	if !u.store.Load().Setting(model.SettingGateEnabled, true) {
		return true
	}
	subscribed := false
	for _, res := range u.Check(ctx, userID) {
		if res.Outcome == model.MembershipActive {
			subscribed = true
			break
		}
	}
	result := "denied"
	if subscribed {
		result = "granted"
	}
	metrics.SubscriptionChecks.WithLabelValues(result).Inc()
	u.log.Info().Int64("tg_id", userID).Bool("subscribed", subscribed).Msg("subscription gate verdict")
	return subscribed
}
