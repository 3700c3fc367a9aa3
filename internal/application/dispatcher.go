package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"telegram-gate-bot/internal/domain"
	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/domain/ports/adapter"
	"telegram-gate-bot/internal/domain/ports/repository"
	"telegram-gate-bot/internal/infra/logging"
	"telegram-gate-bot/internal/infra/metrics"
	"telegram-gate-bot/internal/usecase"

	"github.com/rs/zerolog"
)

// Message is the platform-agnostic slice of an inbound message the
// dispatcher cares about. Forward and reply origins matter only to the
// add-admin wizard.
type Message struct {
	ID                 int
	ChatID             int64
	UserID             int64
	Text               string
	Caption            string
	PhotoID            string
	DocumentID         string
	DocumentName       string
	ForwardFromID      int64
	ForwardFromChannel bool
	ReplyToUserID      int64
}

// Callback is an inline button press.
type Callback struct {
	ID        string
	UserID    int64
	ChatID    int64
	MessageID int
	Data      string
}

// Options carries the deploy-time knobs the dispatcher needs beyond its
// collaborators.
type Options struct {
	// DownloadPageURL, when set, is offered as a site alternative after
	// a passed check.
	DownloadPageURL string
	// SiteURL builds the getid deep link. Local addresses suppress the
	// link and show the raw id instead.
	SiteURL string
	// AssetsDir holds the bundled fallback images.
	AssetsDir string
}

type callbackHandler func(ctx context.Context, cb Callback) error
type prefixHandler func(ctx context.Context, cb Callback, arg string) error

type prefixRoute struct {
	prefix  string
	handler prefixHandler
}

// Dispatcher routes inbound updates to the gate, the download flow and
// the admin console.
type Dispatcher struct {
	chat      adapter.ChatClient
	store     repository.StoreRepository
	registry  repository.ConversationRegistry
	subs      usecase.SubscriptionUseCase
	broadcast usecase.BroadcastUseCase
	stats     usecase.StatsUseCase
	fetcher   adapter.InstallerFetcher
	logs      *logging.RingHook
	opts      Options
	log       *zerolog.Logger

	cbExact  map[string]callbackHandler
	cbPrefix []prefixRoute
}

func NewDispatcher(
	chat adapter.ChatClient,
	store repository.StoreRepository,
	registry repository.ConversationRegistry,
	subs usecase.SubscriptionUseCase,
	broadcast usecase.BroadcastUseCase,
	stats usecase.StatsUseCase,
	fetcher adapter.InstallerFetcher,
	logs *logging.RingHook,
	opts Options,
	logger *zerolog.Logger,
) *Dispatcher {
	d := &Dispatcher{
		chat:      chat,
		store:     store,
		registry:  registry,
		subs:      subs,
		broadcast: broadcast,
		stats:     stats,
		fetcher:   fetcher,
		logs:      logs,
		opts:      opts,
		log:       logger,
	}
	d.cbExact = map[string]callbackHandler{
		"main_menu":             d.cbMainMenu,
		"check_subscription":    d.cbCheckSubscription,
		"download_here":         d.cbDownloadHere,
		"admin_panel":           d.admin(d.cbAdminPanel),
		"admin_channels":        d.admin(d.cbAdminChannels),
		"admin_channel_add":     d.admin(d.promptWizard(repository.WizardState{Step: repository.StepAddChannel}, promptAddChannel, "admin_channels")),
		"admin_links":           d.admin(d.cbAdminLinks),
		"admin_link_add":        d.admin(d.promptWizard(repository.WizardState{Step: repository.StepAddLink}, promptAddLink, "admin_links")),
		"admin_files":           d.admin(d.cbAdminFiles),
		"admin_file_edit":       d.admin(d.promptWizard(repository.WizardState{Step: repository.StepEditFileURL}, promptFileURL, "admin_files")),
		"admin_file_upload":     d.admin(d.promptWizard(repository.WizardState{Step: repository.StepUploadFile}, promptUploadFile, "admin_files")),
		"admin_admins":          d.admin(d.cbAdminAdmins),
		"admin_add":             d.admin(d.promptWizard(repository.WizardState{Step: repository.StepAddAdmin}, promptAddAdmin, "admin_admins")),
		"admin_ban":             d.admin(d.cbAdminBans),
		"admin_ban_add":         d.admin(d.promptWizard(repository.WizardState{Step: repository.StepBanUser}, promptBanUser, "admin_ban")),
		"admin_unban":           d.admin(d.promptWizard(repository.WizardState{Step: repository.StepUnbanUser}, promptUnbanUser, "admin_ban")),
		"admin_broadcast":       d.admin(d.cbAdminBroadcast),
		"admin_broadcast_start": d.admin(d.promptWizard(repository.WizardState{Step: repository.StepBroadcast}, promptBroadcast, "admin_broadcast")),
		"admin_stats":           d.admin(d.cbAdminStats),
		"admin_users":           d.admin(d.cbAdminUsers),
		"admin_texts":           d.admin(d.cbAdminTexts),
		"admin_images":          d.admin(d.cbAdminImages),
		"admin_settings":        d.admin(d.cbAdminSettings),
		"admin_logs":            d.admin(d.cbAdminLogs),
		"admin_export":          d.admin(d.cbAdminExport),
		"admin_import":          d.admin(d.promptWizard(repository.WizardState{Step: repository.StepImport}, promptImport, "admin_panel")),
	}
	d.cbPrefix = []prefixRoute{
		{"admin_channel_edit_", d.adminArg(d.cbChannelEdit)},
		{"admin_link_edit_", d.adminArg(d.cbLinkEdit)},
		{"admin_remove_", d.adminArg(d.cbAdminRemove)},
		{"admin_text_edit_", d.adminArg(d.cbTextEdit)},
		{"admin_image_edit_", d.adminArg(d.cbImageEdit)},
		{"admin_setting_", d.adminArg(d.cbSettingToggle)},
	}
	return d
}

// OnCommand handles a slash command. The payload is the trailing
// argument of /start deep links.
func (d *Dispatcher) OnCommand(ctx context.Context, msg Message, command, payload string) error {
	metrics.UpdatesProcessed.WithLabelValues("command").Inc()
	log := logging.With(logging.WithTgID(ctx, msg.UserID), d.log)

	// Banned senders are refused before anything else touches the
	// store; they never join the broadcast roster.
	if d.store.IsBanned(msg.UserID) {
		_, err := d.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.ChatID, Text: Text(d.store.Load(), TextBanned)})
		return err
	}
	d.registerUser(msg.UserID)

	switch command {
	case "start":
		if payload == "getid" {
			return d.sendGetID(ctx, msg)
		}
		log.Info().Str("command", command).Msg("start")
		return d.sendView(ctx, msg.ChatID, msg.UserID, MainMenuView(d.store.Load()))
	case "getid":
		return d.sendGetID(ctx, msg)
	case "admin":
		if !d.store.IsAdmin(msg.UserID) {
			log.Warn().Msg("admin command denied")
			_, err := d.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.ChatID, Text: Text(d.store.Load(), TextAdminDenied)})
			return err
		}
		d.registry.ClearWizard(msg.UserID)
		return d.sendView(ctx, msg.ChatID, msg.UserID, AdminRootView())
	default:
		return d.sendView(ctx, msg.ChatID, msg.UserID, MainMenuView(d.store.Load()))
	}
}

// OnMessage handles a free-form message. For admins with a pending
// wizard cursor the message is consumed by the wizard; everyone else
// gets the main menu back.
func (d *Dispatcher) OnMessage(ctx context.Context, msg Message) error {
	metrics.UpdatesProcessed.WithLabelValues("message").Inc()

	if d.store.IsBanned(msg.UserID) {
		_, err := d.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.ChatID, Text: Text(d.store.Load(), TextBanned)})
		return err
	}
	d.registerUser(msg.UserID)

	if d.store.IsAdmin(msg.UserID) {
		if state, ok := d.registry.Wizard(msg.UserID); ok {
			// The cursor is consumed no matter what the message holds;
			// invalid input means the admin re-enters from the menu.
			d.registry.ClearWizard(msg.UserID)
			return d.handleWizard(ctx, msg, state)
		}
	}

	return d.sendView(ctx, msg.ChatID, msg.UserID, MainMenuView(d.store.Load()))
}

// OnCallback handles an inline button press.
func (d *Dispatcher) OnCallback(ctx context.Context, cb Callback) error {
	metrics.UpdatesProcessed.WithLabelValues("callback").Inc()
	log := logging.With(logging.WithTgID(ctx, cb.UserID), d.log)

	if d.store.IsBanned(cb.UserID) {
		return d.chat.AnswerCallback(ctx, cb.ID, Text(d.store.Load(), TextBanned), true)
	}
	d.registerUser(cb.UserID)

	// Stop the client spinner before doing any real work.
	if err := d.chat.AnswerCallback(ctx, cb.ID, "", false); err != nil {
		log.Debug().Err(err).Msg("answer callback")
	}

	if h, ok := d.cbExact[cb.Data]; ok {
		return h(ctx, cb)
	}
	for _, r := range d.cbPrefix {
		if strings.HasPrefix(cb.Data, r.prefix) {
			return r.handler(ctx, cb, strings.TrimPrefix(cb.Data, r.prefix))
		}
	}
	log.Warn().Str("data", cb.Data).Msg("unknown callback action")
	return nil
}

// registerUser records the sender in the broadcast roster.
func (d *Dispatcher) registerUser(id int64) {
	if err := d.store.AddUser(id); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		d.log.Warn().Err(err).Int64("tg_id", id).Msg("register user")
	}
}

// admin wraps a callback handler with the admin gate. Membership is
// re-checked on every press; a stale admin keyboard in a demoted
// user's chat stays inert.
func (d *Dispatcher) admin(h callbackHandler) callbackHandler {
	return func(ctx context.Context, cb Callback) error {
		if !d.store.IsAdmin(cb.UserID) {
			return d.chat.AnswerCallback(ctx, cb.ID, Text(d.store.Load(), TextAdminDenied), true)
		}
		return h(ctx, cb)
	}
}

func (d *Dispatcher) adminArg(h prefixHandler) prefixHandler {
	return func(ctx context.Context, cb Callback, arg string) error {
		if !d.store.IsAdmin(cb.UserID) {
			return d.chat.AnswerCallback(ctx, cb.ID, Text(d.store.Load(), TextAdminDenied), true)
		}
		return h(ctx, cb, arg)
	}
}

// sendView delivers a rendered screen as a fresh message, deleting the
// previously tracked one first when the replace-in-place setting is on.
// A failed photo send degrades to a plain text message with the same
// caption and keyboard.
func (d *Dispatcher) sendView(ctx context.Context, chatID, userID int64, v View) error {
	doc := d.store.Load()
	if doc.Setting(model.SettingReplaceUI, true) {
		if prev, ok := d.registry.TakeMessage(userID); ok {
			if err := d.chat.DeleteMessage(ctx, chatID, prev); err != nil {
				d.log.Debug().Err(err).Int("message_id", prev).Msg("delete previous message")
			}
		}
	}

	var (
		msgID int
		sent  bool
	)
	if v.ImageSlot != "" {
		p := adapter.SendPhotoParams{ChatID: chatID, Caption: v.Caption, Rows: v.Rows}
		if fileID, ok := doc.Images[v.ImageSlot]; ok && fileID != "" {
			p.FileID = fileID
		} else if name := defaultImageFiles[v.ImageSlot]; name != "" && d.opts.AssetsDir != "" {
			p.Path = filepath.Join(d.opts.AssetsDir, name)
		}
		if p.FileID != "" || p.Path != "" {
			id, err := d.chat.SendPhoto(ctx, p)
			if err != nil {
				d.log.Warn().Err(err).Str("slot", v.ImageSlot).Msg("photo send failed, falling back to text")
			} else {
				msgID, sent = id, true
			}
		}
	}
	if !sent {
		id, err := d.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: chatID, Text: v.Caption, Rows: v.Rows})
		if err != nil {
			metrics.HandlerErrors.Inc()
			return err
		}
		msgID = id
	}

	d.registry.TrackMessage(userID, msgID)
	return nil
}

// editView rewrites the pressed message in place, falling back to a
// fresh message when the edit is rejected (photo messages cannot take a
// text edit).
func (d *Dispatcher) editView(ctx context.Context, cb Callback, v View) error {
	if err := d.chat.EditMessageText(ctx, cb.ChatID, cb.MessageID, v.Caption, v.Rows); err == nil {
		d.registry.TrackMessage(cb.UserID, cb.MessageID)
		return nil
	}
	return d.sendView(ctx, cb.ChatID, cb.UserID, v)
}

// sendGetID replies with the caller's id and their current gate
// verdict, the same verdict the download site will see.
func (d *Dispatcher) sendGetID(ctx context.Context, msg Message) error {
	doc := d.store.Load()
	subscribed := d.subs.IsSubscribed(ctx, msg.UserID)

	var b strings.Builder
	fmt.Fprintf(&b, "🆔 <b>Your Telegram ID:</b>\n\n<code>%d</code>\n\n", msg.UserID)
	if subscribed {
		b.WriteString("✅ <b>You are subscribed to the channels!</b>\n\nUse the button below to continue on the site:")
	} else {
		b.WriteString("❌ <b>You are not subscribed to the channels</b>\n\nPlease subscribe first:\n")
		for i, link := range doc.ChannelLinks {
			fmt.Fprintf(&b, "%d. %s\n", i+1, link)
		}
		b.WriteString("\nOnce subscribed, use the button below to verify:")
	}

	var rows [][]adapter.InlineButton
	if site := d.opts.SiteURL; site != "" && !isLocalURL(site) {
		link := fmt.Sprintf("%s/?telegram_id=%d&check_subscription=true", strings.TrimRight(site, "/"), msg.UserID)
		rows = append(rows, row(urlBtn("✅ Verify on the site", link)))
	} else {
		// Telegram rejects localhost button URLs, so fall back to
		// manual instructions.
		b.WriteString("\n\n💡 <b>To verify your subscription:</b>\n")
		b.WriteString("1. Copy your ID above\n2. Open the site\n3. Paste the ID into the check field\n4. Press \"Check with ID\"")
	}

	_, err := d.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.ChatID, Text: b.String(), Rows: rows})
	return err
}

func isLocalURL(raw string) bool {
	return strings.Contains(raw, "localhost") || strings.Contains(raw, "127.0.0.1")
}

func (d *Dispatcher) cbMainMenu(ctx context.Context, cb Callback) error {
	return d.sendView(ctx, cb.ChatID, cb.UserID, MainMenuView(d.store.Load()))
}

func (d *Dispatcher) cbCheckSubscription(ctx context.Context, cb Callback) error {
	subscribed := d.subs.IsSubscribed(ctx, cb.UserID)
	return d.sendView(ctx, cb.ChatID, cb.UserID, CheckResultView(d.store.Load(), subscribed, d.opts.DownloadPageURL))
}

// cbDownloadHere re-verifies the gate and then delivers the installer,
// either by stored platform file id or by fetching the configured URL.
func (d *Dispatcher) cbDownloadHere(ctx context.Context, cb Callback) error {
	doc := d.store.Load()
	if !d.subs.IsSubscribed(ctx, cb.UserID) {
		return d.sendView(ctx, cb.ChatID, cb.UserID, AccessDeniedView(doc))
	}

	loading := View{Caption: Text(doc, TextLoading), ImageSlot: ImageDownload}
	if err := d.sendView(ctx, cb.ChatID, cb.UserID, loading); err != nil {
		return err
	}

	p := adapter.SendDocumentParams{
		ChatID:  cb.ChatID,
		Caption: Text(doc, TextDownloadDone),
		Rows:    [][]adapter.InlineButton{backRow("main_menu")},
	}
	if doc.FileID != "" {
		p.FileID = doc.FileID
		p.Name = doc.FileName
	} else {
		name, body, err := d.fetcher.Fetch(ctx, doc.FileURL)
		if err != nil {
			d.log.Error().Err(err).Str("url", doc.FileURL).Msg("installer fetch failed")
			metrics.HandlerErrors.Inc()
			return d.sendView(ctx, cb.ChatID, cb.UserID, View{
				Caption: Text(doc, TextDownloadErr),
				Rows:    [][]adapter.InlineButton{backRow("main_menu")},
			})
		}
		p.Name = name
		p.Bytes = body
	}

	msgID, err := d.chat.SendDocument(ctx, p)
	if err != nil {
		metrics.HandlerErrors.Inc()
		return d.sendView(ctx, cb.ChatID, cb.UserID, View{
			Caption: Text(doc, TextDownloadErr),
			Rows:    [][]adapter.InlineButton{backRow("main_menu")},
		})
	}

	// The loading interstitial is tracked; clear it away so the
	// delivered file becomes the surviving message.
	if prev, ok := d.registry.TakeMessage(cb.UserID); ok {
		if delErr := d.chat.DeleteMessage(ctx, cb.ChatID, prev); delErr != nil {
			d.log.Debug().Err(delErr).Msg("delete loading message")
		}
	}
	d.registry.TrackMessage(cb.UserID, msgID)
	return nil
}

func (d *Dispatcher) cbAdminPanel(ctx context.Context, cb Callback) error {
	d.registry.ClearWizard(cb.UserID)
	return d.editView(ctx, cb, AdminRootView())
}

func (d *Dispatcher) cbAdminChannels(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, ChannelsView(d.store.Load()))
}

func (d *Dispatcher) cbAdminLinks(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, LinksView(d.store.Load()))
}

func (d *Dispatcher) cbAdminFiles(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, FilesView(d.store.Load()))
}

// cbAdminAdmins fetches live display names for the roster; ids whose
// lookup fails render as raw ids.
func (d *Dispatcher) cbAdminAdmins(ctx context.Context, cb Callback) error {
	doc := d.store.Load()
	names := make(map[int64]string, len(doc.Admins))
	for _, id := range doc.Admins {
		info, err := d.chat.GetChat(ctx, id)
		if err != nil {
			d.log.Debug().Err(err).Int64("tg_id", id).Msg("admin name lookup")
			continue
		}
		switch {
		case info.Username != "":
			names[id] = "@" + info.Username
		case info.FirstName != "":
			names[id] = info.FirstName
		}
	}
	return d.editView(ctx, cb, AdminsView(doc, names, cb.UserID))
}

func (d *Dispatcher) cbAdminBans(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, BansView(d.store.Load()))
}

func (d *Dispatcher) cbAdminBroadcast(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, BroadcastView(d.store.Load()))
}

func (d *Dispatcher) cbAdminStats(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, StatsView(d.stats.Totals(ctx)))
}

func (d *Dispatcher) cbAdminUsers(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, UsersView(d.store.Load()))
}

func (d *Dispatcher) cbAdminTexts(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, TextsView(d.store.Load()))
}

func (d *Dispatcher) cbAdminImages(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, ImagesView(d.store.Load()))
}

func (d *Dispatcher) cbAdminSettings(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, SettingsView(d.store.Load()))
}

func (d *Dispatcher) cbAdminLogs(ctx context.Context, cb Callback) error {
	return d.editView(ctx, cb, LogsView(d.logs.Recent(20)))
}

// cbAdminExport sends the whole document as a JSON attachment.
func (d *Dispatcher) cbAdminExport(ctx context.Context, cb Callback) error {
	body, err := json.MarshalIndent(d.store.Load(), "", "  ")
	if err != nil {
		return fmt.Errorf("export document: %w", err)
	}
	_, err = d.chat.SendDocument(ctx, adapter.SendDocumentParams{
		ChatID:  cb.ChatID,
		Name:    "export.json",
		Bytes:   body,
		Caption: "📦 Full configuration export. Send it back via Import to restore.",
	})
	return err
}

func (d *Dispatcher) cbChannelEdit(ctx context.Context, cb Callback, arg string) error {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(d.store.Load().ChannelIDs) {
		return d.chat.AnswerCallback(ctx, cb.ID, "That channel no longer exists.", true)
	}
	d.registry.SetWizard(cb.UserID, repository.WizardState{Step: repository.StepEditChannel, Index: idx - 1})
	return d.editView(ctx, cb, promptView(promptEditChannel, "admin_channels"))
}

func (d *Dispatcher) cbLinkEdit(ctx context.Context, cb Callback, arg string) error {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(d.store.Load().ChannelLinks) {
		return d.chat.AnswerCallback(ctx, cb.ID, "That link no longer exists.", true)
	}
	d.registry.SetWizard(cb.UserID, repository.WizardState{Step: repository.StepEditLink, Index: idx - 1})
	return d.editView(ctx, cb, promptView(promptEditLink, "admin_links"))
}

func (d *Dispatcher) cbAdminRemove(ctx context.Context, cb Callback, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return d.chat.AnswerCallback(ctx, cb.ID, "Bad admin id.", true)
	}
	if id == cb.UserID {
		return d.chat.AnswerCallback(ctx, cb.ID, "You cannot remove yourself.", true)
	}
	if err := d.store.RemoveAdmin(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return d.chat.AnswerCallback(ctx, cb.ID, "Already removed.", true)
		}
		return err
	}
	d.log.Info().Int64("removed", id).Int64("by", cb.UserID).Msg("admin removed")
	return d.cbAdminAdmins(ctx, cb)
}

func (d *Dispatcher) cbTextEdit(ctx context.Context, cb Callback, slot string) error {
	d.registry.SetWizard(cb.UserID, repository.WizardState{Step: repository.StepEditText, Slot: slot})
	current := Text(d.store.Load(), slot)
	prompt := fmt.Sprintf("📝 Editing <b>%s</b>.\n\nCurrent value:\n\n%s\n\nSend the new text:", slot, current)
	return d.editView(ctx, cb, promptView(prompt, "admin_texts"))
}

func (d *Dispatcher) cbImageEdit(ctx context.Context, cb Callback, slot string) error {
	d.registry.SetWizard(cb.UserID, repository.WizardState{Step: repository.StepUploadImage, Slot: slot})
	prompt := fmt.Sprintf("🖼 Editing <b>%s</b>.\n\nSend the replacement photo:", slot)
	return d.editView(ctx, cb, promptView(prompt, "admin_images"))
}

func (d *Dispatcher) cbSettingToggle(ctx context.Context, cb Callback, key string) error {
	def := true
	known := false
	for _, s := range settingLabels {
		if s.Key == key {
			def = s.Def
			known = true
			break
		}
	}
	if !known {
		return d.chat.AnswerCallback(ctx, cb.ID, "Unknown setting.", true)
	}
	if _, err := d.store.ToggleSetting(key, def); err != nil {
		return err
	}
	return d.editView(ctx, cb, SettingsView(d.store.Load()))
}

// promptWizard arms the cursor and rewrites the screen into the prompt.
func (d *Dispatcher) promptWizard(state repository.WizardState, prompt, back string) callbackHandler {
	return func(ctx context.Context, cb Callback) error {
		d.registry.SetWizard(cb.UserID, state)
		return d.editView(ctx, cb, promptView(prompt, back))
	}
}

func promptView(prompt, back string) View {
	return View{
		Caption: prompt,
		Rows:    [][]adapter.InlineButton{row(btn("❌ Cancel", back))},
	}
}

const (
	promptAddChannel  = "📢 Send the numeric channel id (for example <code>-1001234567890</code>).\n\nThe bot must be an administrator of that channel."
	promptEditChannel = "📢 Send the new numeric channel id, or <code>delete</code> to remove this channel."
	promptAddLink     = "🔗 Send the invite link (must start with <code>http</code>)."
	promptEditLink    = "🔗 Send the new invite link, or <code>delete</code> to remove this one."
	promptFileURL     = "📝 Send the new file URL (must start with <code>http</code>)."
	promptUploadFile  = "📤 Send the file as a document attachment. It will be served instead of the URL."
	promptAddAdmin    = "👤 Forward any message from the new admin, reply to one of their messages, or send their numeric id."
	promptBanUser     = "🚫 Send the numeric id of the user to ban."
	promptUnbanUser   = "♻️ Send the numeric id of the user to unban."
	promptBroadcast   = "📨 Send the message to broadcast. Text, a photo or a document with caption all work."
	promptImport      = "📥 Send the previously exported JSON file. It will replace the whole configuration."
)
