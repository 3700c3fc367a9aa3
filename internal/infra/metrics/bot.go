package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	UpdatesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_processed_total",
			Help: "Inbound updates handled, labeled by kind (command/callback/message).",
		},
		[]string{"kind"},
	)

	HandlerErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_handler_errors_total",
			Help: "Update handlers that returned an error.",
		},
	)

	SubscriptionChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_subscription_checks_total",
			Help: "Subscription gate verdicts, labeled by result (granted/denied).",
		},
		[]string{"result"},
	)

	ChannelLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_channel_lookups_total",
			Help: "Per-channel membership lookups, labeled by outcome (active/inactive/error).",
		},
		[]string{"outcome"},
	)

	BroadcastMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_broadcast_messages_total",
			Help: "Broadcast deliveries, labeled by result (sent/failed/pruned).",
		},
		[]string{"result"},
	)

	StoreSaves = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_store_saves_total",
			Help: "Successful full-document store rewrites.",
		},
	)

	StoreSaveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_store_save_failures_total",
			Help: "Store rewrites that did not reach disk.",
		},
	)

	InstallerFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_installer_fetches_total",
			Help: "Installer downloads proxied through the bot, labeled by result.",
		},
		[]string{"result"},
	)
)

func init() {
	register(
		UpdatesProcessed,
		HandlerErrors,
		SubscriptionChecks,
		ChannelLookups,
		BroadcastMessages,
		StoreSaves,
		StoreSaveFailures,
		InstallerFetches,
	)
}
