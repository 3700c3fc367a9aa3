package application

import "telegram-gate-bot/internal/domain/model"

// Text slots. Each one can be overridden by operators through the
// admin console; the override lives in the document's messages map and
// wins over the built-in default.
const (
	TextWelcome      = "welcome"
	TextCheckOK      = "check_ok"
	TextCheckFail    = "check_fail"
	TextAccessDenied = "access_denied"
	TextBanned       = "banned"
	TextLoading      = "download_loading"
	TextDownloadDone = "download_done"
	TextDownloadErr  = "download_error"
	TextAdminDenied  = "admin_denied"
)

// TextSlots lists every overridable slot in the order the admin
// console shows them.
var TextSlots = []string{
	TextWelcome,
	TextCheckOK,
	TextCheckFail,
	TextAccessDenied,
	TextBanned,
	TextLoading,
	TextDownloadDone,
	TextDownloadErr,
	TextAdminDenied,
}

var defaultTexts = map[string]string{
	TextWelcome: "👋 <b>Welcome!</b>\n\n" +
		"⚠️ To use this bot you need to subscribe to our channels.\n\n" +
		"Please subscribe below and press the check button:",
	TextCheckOK: "✅ <b>Great!</b>\n\n" +
		"You are subscribed to the required channels!\n\n" +
		"Choose how to download:",
	TextCheckFail: "❌ <b>Subscription not found</b>\n\n" +
		"Please subscribe to the channels above and press the check button.",
	TextAccessDenied: "❌ <b>Access denied</b>\n\n" +
		"You need to subscribe to the channels to download the file.",
	TextBanned:       "❌ Access denied.",
	TextLoading:      "📥 Downloading the file...",
	TextDownloadDone: "📥 <b>File delivered!</b>",
	TextDownloadErr:  "❌ Failed to fetch the file. Please try again later.",
	TextAdminDenied:  "❌ You do not have access to the admin console.",
}

// Text resolves a slot against the document's overrides, falling back
// to the built-in default. Unknown slots come back empty.
func Text(doc *model.Document, slot string) string {
	if doc != nil {
		if v, ok := doc.Messages[slot]; ok && v != "" {
			return v
		}
	}
	return defaultTexts[slot]
}

// Image slots. Overrides hold uploaded-asset file ids; the fallback is
// a bundled file under the configured assets directory.
const (
	ImageMain     = "main"
	ImageSuccess  = "success"
	ImageError    = "error"
	ImageDownload = "download"
)

var ImageSlots = []string{ImageMain, ImageSuccess, ImageError, ImageDownload}

var defaultImageFiles = map[string]string{
	ImageMain:     "preview.png",
	ImageSuccess:  "success.png",
	ImageError:    "error.png",
	ImageDownload: "download.png",
}
