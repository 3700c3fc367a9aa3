package application

import (
	"fmt"
	"strings"

	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/domain/ports/adapter"
	"telegram-gate-bot/internal/usecase"
)

// View is one rendered screen: caption, inline keyboard and an
// optional image slot. Views are pure functions of a store snapshot so
// they can be tested without any platform in sight.
type View struct {
	Caption   string
	Rows      [][]adapter.InlineButton
	ImageSlot string
}

func btn(text, data string) adapter.InlineButton      { return adapter.InlineButton{Text: text, Data: data} }
func urlBtn(text, url string) adapter.InlineButton    { return adapter.InlineButton{Text: text, URL: url} }
func row(bs ...adapter.InlineButton) []adapter.InlineButton { return bs }

// subscribeRows renders one URL button per configured invite link plus
// the check button. The link list is promotional and may not line up
// with the authoritative channel-id set; that asymmetry is deliberate.
func subscribeRows(doc *model.Document) [][]adapter.InlineButton {
	var rows [][]adapter.InlineButton
	for i, link := range doc.ChannelLinks {
		rows = append(rows, row(urlBtn(fmt.Sprintf("📢 Subscribe to channel %d", i+1), link)))
	}
	rows = append(rows, row(btn("✅ Check subscription", "check_subscription")))
	return rows
}

// MainMenuView is the public landing screen.
func MainMenuView(doc *model.Document) View {
	return View{
		Caption:   Text(doc, TextWelcome),
		Rows:      subscribeRows(doc),
		ImageSlot: ImageMain,
	}
}

// CheckResultView renders the gate verdict. downloadPage, when set, is
// offered as an alternative to the in-bot download.
func CheckResultView(doc *model.Document, subscribed bool, downloadPage string) View {
	if !subscribed {
		return View{
			Caption:   Text(doc, TextCheckFail),
			Rows:      subscribeRows(doc),
			ImageSlot: ImageError,
		}
	}
	var rows [][]adapter.InlineButton
	if downloadPage != "" {
		rows = append(rows, row(urlBtn("🌐 Download via site", downloadPage)))
	}
	rows = append(rows, row(btn("📥 Download via bot", "download_here")))
	return View{
		Caption:   Text(doc, TextCheckOK),
		Rows:      rows,
		ImageSlot: ImageSuccess,
	}
}

// AccessDeniedView is shown when an unsubscribed user asks for the file.
func AccessDeniedView(doc *model.Document) View {
	return View{
		Caption: Text(doc, TextAccessDenied),
		Rows:    subscribeRows(doc),
	}
}

func backRow(target string) []adapter.InlineButton {
	return row(btn("🔙 Back", target))
}

// AdminRootView is the admin console landing screen.
func AdminRootView() View {
	return View{
		Caption: "🔐 <b>Admin console</b>\n\nChoose a section:",
		Rows: [][]adapter.InlineButton{
			row(btn("📢 Channels", "admin_channels"), btn("🔗 Links", "admin_links")),
			row(btn("📁 Files", "admin_files"), btn("👥 Admins", "admin_admins")),
			row(btn("📨 Broadcast", "admin_broadcast")),
			row(btn("📊 Stats", "admin_stats"), btn("🧑 Users", "admin_users")),
			row(btn("🚫 Bans", "admin_ban")),
			row(btn("📝 Texts", "admin_texts"), btn("🖼 Images", "admin_images")),
			row(btn("⚙️ Settings", "admin_settings"), btn("📜 Logs", "admin_logs")),
			row(btn("📦 Export", "admin_export"), btn("📥 Import", "admin_import")),
			row(btn("🔙 Main menu", "main_menu")),
		},
	}
}

// ChannelsView lists the authoritative channel-id set.
func ChannelsView(doc *model.Document) View {
	var rows [][]adapter.InlineButton
	for i, ch := range doc.ChannelIDs {
		rows = append(rows, row(btn(
			fmt.Sprintf("📢 Channel %d (%s)", i+1, ch.String()),
			fmt.Sprintf("admin_channel_edit_%d", i+1),
		)))
	}
	rows = append(rows, row(btn("➕ Add channel", "admin_channel_add")), backRow("admin_panel"))
	caption := fmt.Sprintf("📢 <b>Channels</b>\n\nConfigured: %d\n\nPick one to edit, or add a new id:", len(doc.ChannelIDs))
	if len(doc.ChannelIDs) == 0 {
		caption = "📢 <b>Channels</b>\n\nNone yet. Add the first channel id:"
	}
	return View{Caption: caption, Rows: rows}
}

// LinksView lists the promotional invite links.
func LinksView(doc *model.Document) View {
	var rows [][]adapter.InlineButton
	for i := range doc.ChannelLinks {
		rows = append(rows, row(btn(
			fmt.Sprintf("🔗 Link %d", i+1),
			fmt.Sprintf("admin_link_edit_%d", i+1),
		)))
	}
	rows = append(rows, row(btn("➕ Add link", "admin_link_add")), backRow("admin_panel"))
	caption := fmt.Sprintf("🔗 <b>Invite links</b>\n\nConfigured: %d\n\nPick one to edit, or add a new link:", len(doc.ChannelLinks))
	if len(doc.ChannelLinks) == 0 {
		caption = "🔗 <b>Invite links</b>\n\nNone yet. Add the first link:"
	}
	return View{Caption: caption, Rows: rows}
}

// FilesView shows the download source settings.
func FilesView(doc *model.Document) View {
	var b strings.Builder
	b.WriteString("📁 <b>File settings</b>\n\n")
	fmt.Fprintf(&b, "Current URL:\n<code>%s</code>\n", doc.FileURL)
	if doc.FileID != "" {
		fmt.Fprintf(&b, "\nUploaded file: <b>%s</b> (served instead of the URL)\n", doc.FileName)
	}
	b.WriteString("\nChoose an action:")
	return View{
		Caption: b.String(),
		Rows: [][]adapter.InlineButton{
			row(btn("📝 Change file URL", "admin_file_edit")),
			row(btn("📤 Upload a file", "admin_file_upload")),
			backRow("admin_panel"),
		},
	}
}

// AdminsView lists the roster. names carries the live display names
// fetched by the dispatcher; ids without a name render as raw ids.
func AdminsView(doc *model.Document, names map[int64]string, viewerID int64) View {
	var rows [][]adapter.InlineButton
	for _, id := range doc.Admins {
		label := names[id]
		if label == "" {
			label = fmt.Sprintf("ID: %d", id)
		}
		label = "👤 " + label
		if id == viewerID {
			label += " (you)"
		}
		rows = append(rows, row(btn(label, fmt.Sprintf("admin_remove_%d", id))))
	}
	rows = append(rows,
		row(btn("➕ Add admin", "admin_add")),
		row(btn("🔄 Refresh", "admin_admins")),
		backRow("admin_panel"),
	)
	return View{
		Caption: fmt.Sprintf("👥 <b>Admins</b>\n\nCurrent: <b>%d</b>\n\nPick one to remove, or add a new admin:", len(doc.Admins)),
		Rows:    rows,
	}
}

// BansView shows the banned set and the ban/unban entry points.
func BansView(doc *model.Document) View {
	var b strings.Builder
	fmt.Fprintf(&b, "🚫 <b>Bans</b>\n\nBanned users: <b>%d</b>\n", len(doc.Banned))
	if len(doc.Banned) == 0 {
		b.WriteString("\nNobody is banned yet.")
	} else {
		b.WriteString("\n")
		for _, id := range limitIDs(doc.Banned, 20) {
			fmt.Fprintf(&b, "• <code>%d</code>\n", id)
		}
	}
	return View{
		Caption: b.String(),
		Rows: [][]adapter.InlineButton{
			row(btn("🚫 Ban a user", "admin_ban_add")),
			row(btn("♻️ Unban a user", "admin_unban")),
			backRow("admin_panel"),
		},
	}
}

// BroadcastView is the broadcast section landing screen.
func BroadcastView(doc *model.Document) View {
	return View{
		Caption: fmt.Sprintf(
			"📨 <b>Broadcast</b>\n\n👥 Users on record: <b>%d</b>\n\nPress the button below, then send the message (text, photo or document) to forward to everyone:",
			len(doc.Users)),
		Rows: [][]adapter.InlineButton{
			row(btn("📨 Start broadcast", "admin_broadcast_start")),
			backRow("admin_panel"),
		},
	}
}

// StatsView renders the count snapshot.
func StatsView(t usecase.Totals) View {
	caption := fmt.Sprintf(
		"📊 <b>Stats</b>\n\n👥 Users: <b>%d</b>\n🔐 Admins: <b>%d</b>\n🚫 Banned: <b>%d</b>\n📢 Channels: <b>%d</b>\n🔗 Links: <b>%d</b>",
		t.Users, t.Admins, t.Banned, t.Channels, t.Links)
	return View{
		Caption: caption,
		Rows: [][]adapter.InlineButton{
			row(btn("🔄 Refresh", "admin_stats")),
			backRow("admin_panel"),
		},
	}
}

// UsersView lists known user ids, truncated for readability.
func UsersView(doc *model.Document) View {
	var b strings.Builder
	fmt.Fprintf(&b, "🧑 <b>Users</b>\n\nTotal: <b>%d</b>\n", len(doc.Users))
	if len(doc.Users) == 0 {
		b.WriteString("\nNobody has talked to the bot yet.")
	} else {
		b.WriteString("\n")
		shown := limitIDs(doc.Users, 30)
		for _, id := range shown {
			fmt.Fprintf(&b, "• <code>%d</code>\n", id)
		}
		if len(doc.Users) > len(shown) {
			fmt.Fprintf(&b, "… and %d more\n", len(doc.Users)-len(shown))
		}
	}
	return View{Caption: b.String(), Rows: [][]adapter.InlineButton{backRow("admin_panel")}}
}

// TextsView lists the overridable text slots.
func TextsView(doc *model.Document) View {
	var rows [][]adapter.InlineButton
	for _, slot := range TextSlots {
		label := "📝 " + slot
		if _, ok := doc.Messages[slot]; ok {
			label += " •"
		}
		rows = append(rows, row(btn(label, "admin_text_edit_"+slot)))
	}
	rows = append(rows, backRow("admin_panel"))
	return View{
		Caption: "📝 <b>Texts</b>\n\nPick a slot to override (• marks overridden slots):",
		Rows:    rows,
	}
}

// ImagesView lists the overridable image slots.
func ImagesView(doc *model.Document) View {
	var rows [][]adapter.InlineButton
	for _, slot := range ImageSlots {
		label := "🖼 " + slot
		if _, ok := doc.Images[slot]; ok {
			label += " •"
		}
		rows = append(rows, row(btn(label, "admin_image_edit_"+slot)))
	}
	rows = append(rows, backRow("admin_panel"))
	return View{
		Caption: "🖼 <b>Images</b>\n\nPick a slot, then upload the replacement photo (• marks overridden slots):",
		Rows:    rows,
	}
}

var settingLabels = []struct {
	Key   string
	Label string
	Def   bool
}{
	{model.SettingGateEnabled, "Subscription gate", true},
	{model.SettingPruneBlocked, "Prune blocked users", true},
	{model.SettingReplaceUI, "Replace-in-place UI", true},
}

// SettingsView renders the boolean toggles.
func SettingsView(doc *model.Document) View {
	var rows [][]adapter.InlineButton
	for _, s := range settingLabels {
		mark := "❌"
		if doc.Setting(s.Key, s.Def) {
			mark = "✅"
		}
		rows = append(rows, row(btn(fmt.Sprintf("%s %s", mark, s.Label), "admin_setting_"+s.Key)))
	}
	rows = append(rows, backRow("admin_panel"))
	return View{
		Caption: "⚙️ <b>Settings</b>\n\nTap a toggle to flip it:",
		Rows:    rows,
	}
}

// LogsView renders the retained recent log lines.
func LogsView(lines []string) View {
	var b strings.Builder
	b.WriteString("📜 <b>Recent log</b>\n\n")
	if len(lines) == 0 {
		b.WriteString("Nothing yet.")
	} else {
		b.WriteString("<code>")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("</code>")
	}
	return View{
		Caption: b.String(),
		Rows: [][]adapter.InlineButton{
			row(btn("🔄 Refresh", "admin_logs")),
			backRow("admin_panel"),
		},
	}
}

func limitIDs(ids []int64, n int) []int64 {
	if len(ids) <= n {
		return ids
	}
	return ids[:n]
}
