package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-gate-bot/internal/application"
	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ adapter.ChatClient = (*RealBot)(nil)

// RealBot implements adapter.ChatClient over tgbotapi and runs the
// concurrent polling loop that feeds updates into the dispatcher.
type RealBot struct {
	bot     *tgbotapi.BotAPI
	workers int
	log     *zerolog.Logger

	cancelPolling context.CancelFunc
}

func NewRealBot(token string, workers int, logger *zerolog.Logger) (*RealBot, error) {
	if token == "" {
		return nil, errors.New("bot token is empty")
	}
	if workers <= 0 {
		workers = 5
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect bot api: %w", err)
	}
	return &RealBot{bot: bot, workers: workers, log: logger}, nil
}

// Username returns the authenticated bot account name.
func (r *RealBot) Username() string { return r.bot.Self.UserName }

// StartPolling polls for updates and hands them to d until ctx is
// canceled. Updates are processed by a fixed worker pool so a slow
// broadcast or download does not stall the queue.
func (r *RealBot) StartPolling(ctx context.Context, d *application.Dispatcher) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-updateChan:
					if !ok {
						return
					}
					r.handleUpdate(ctx, d, update, workerID)
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	go func() {
		defer close(updateChan)
		for {
			select {
			case update := <-updates:
				select {
				case updateChan <- update:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	r.bot.StopReceivingUpdates()
	wg.Wait()
	return nil
}

// StopPolling stops the polling loop gracefully.
func (r *RealBot) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// handleUpdate converts one raw update and routes it. A panic in a
// handler is contained to the update that caused it.
func (r *RealBot) handleUpdate(ctx context.Context, d *application.Dispatcher, update tgbotapi.Update, workerID int) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Int("worker", workerID).Msg("update handler panicked")
		}
	}()

	var err error
	switch {
	case update.CallbackQuery != nil:
		err = d.OnCallback(ctx, toCallback(update.CallbackQuery))
	case update.Message != nil && update.Message.From != nil:
		msg := toMessage(update.Message)
		if update.Message.IsCommand() {
			err = d.OnCommand(ctx, msg, update.Message.Command(), update.Message.CommandArguments())
		} else {
			err = d.OnMessage(ctx, msg)
		}
	}
	if err != nil {
		r.log.Warn().Err(err).Int("worker", workerID).Msg("update handler failed")
	}
}

func toMessage(m *tgbotapi.Message) application.Message {
	msg := application.Message{
		ID:      m.MessageID,
		ChatID:  m.Chat.ID,
		UserID:  m.From.ID,
		Text:    m.Text,
		Caption: m.Caption,
	}
	if len(m.Photo) > 0 {
		// The last entry is the highest resolution variant.
		msg.PhotoID = m.Photo[len(m.Photo)-1].FileID
	}
	if m.Document != nil {
		msg.DocumentID = m.Document.FileID
		msg.DocumentName = m.Document.FileName
	}
	if m.ForwardFrom != nil {
		msg.ForwardFromID = m.ForwardFrom.ID
	} else if m.ForwardFromChat != nil && m.ForwardFromChat.IsChannel() {
		msg.ForwardFromChannel = true
	}
	if m.ReplyToMessage != nil && m.ReplyToMessage.From != nil && !m.ReplyToMessage.From.IsBot {
		msg.ReplyToUserID = m.ReplyToMessage.From.ID
	}
	return msg
}

func toCallback(q *tgbotapi.CallbackQuery) application.Callback {
	cb := application.Callback{
		ID:     q.ID,
		UserID: q.From.ID,
		Data:   q.Data,
	}
	if q.Message != nil {
		cb.ChatID = q.Message.Chat.ID
		cb.MessageID = q.Message.MessageID
	}
	return cb
}

func toKeyboard(rows [][]adapter.InlineButton) *tgbotapi.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}
	var kb [][]tgbotapi.InlineKeyboardButton
	for _, r := range rows {
		var line []tgbotapi.InlineKeyboardButton
		for _, b := range r {
			if b.URL != "" {
				line = append(line, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
			} else {
				line = append(line, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
			}
		}
		kb = append(kb, line)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(kb...)
	return &markup
}

func (r *RealBot) SendMessage(_ context.Context, p adapter.SendMessageParams) (int, error) {
	msg := tgbotapi.NewMessage(p.ChatID, p.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if kb := toKeyboard(p.Rows); kb != nil {
		msg.ReplyMarkup = kb
	}
	sent, err := r.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return sent.MessageID, nil
}

func (r *RealBot) SendPhoto(_ context.Context, p adapter.SendPhotoParams) (int, error) {
	var file tgbotapi.RequestFileData
	if p.FileID != "" {
		file = tgbotapi.FileID(p.FileID)
	} else {
		file = tgbotapi.FilePath(p.Path)
	}
	msg := tgbotapi.NewPhoto(p.ChatID, file)
	msg.Caption = p.Caption
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := toKeyboard(p.Rows); kb != nil {
		msg.ReplyMarkup = kb
	}
	sent, err := r.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send photo: %w", err)
	}
	return sent.MessageID, nil
}

func (r *RealBot) SendDocument(_ context.Context, p adapter.SendDocumentParams) (int, error) {
	var file tgbotapi.RequestFileData
	if p.FileID != "" {
		file = tgbotapi.FileID(p.FileID)
	} else {
		file = tgbotapi.FileBytes{Name: p.Name, Bytes: p.Bytes}
	}
	msg := tgbotapi.NewDocument(p.ChatID, file)
	msg.Caption = p.Caption
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := toKeyboard(p.Rows); kb != nil {
		msg.ReplyMarkup = kb
	}
	sent, err := r.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send document: %w", err)
	}
	return sent.MessageID, nil
}

func (r *RealBot) EditMessageText(_ context.Context, chatID int64, messageID int, text string, rows [][]adapter.InlineButton) error {
	var edit tgbotapi.EditMessageTextConfig
	if kb := toKeyboard(rows); kb != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	if _, err := r.bot.Send(edit); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

func (r *RealBot) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := r.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (r *RealBot) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	cfg := tgbotapi.NewCallback(callbackID, text)
	cfg.ShowAlert = alert
	if _, err := r.bot.Request(cfg); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

func (r *RealBot) ChatMemberStatus(_ context.Context, channel model.ChannelRef, userID int64) (string, error) {
	cfg := tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{UserID: userID},
	}
	if id, ok := channel.NumericID(); ok {
		cfg.ChatID = id
	} else {
		cfg.SuperGroupUsername = channel.String()
	}
	member, err := r.bot.GetChatMember(cfg)
	if err != nil {
		return "", fmt.Errorf("get chat member %s: %w", channel, err)
	}
	return member.Status, nil
}

func (r *RealBot) GetChat(_ context.Context, chatID int64) (*adapter.ChatInfo, error) {
	chat, err := r.bot.GetChat(tgbotapi.ChatInfoConfig{ChatConfig: tgbotapi.ChatConfig{ChatID: chatID}})
	if err != nil {
		return nil, fmt.Errorf("get chat %d: %w", chatID, err)
	}
	return &adapter.ChatInfo{ID: chat.ID, Username: chat.UserName, FirstName: chat.FirstName}, nil
}

// DownloadFile pulls an uploaded asset through the file API.
func (r *RealBot) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := r.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("resolve file %s: %w", fileID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(r.bot.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build file request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// SetCommands publishes the command menu shown in the chat UI.
func (r *RealBot) SetCommands(_ context.Context) error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Open the main menu"},
		tgbotapi.BotCommand{Command: "getid", Description: "Show your Telegram ID"},
		tgbotapi.BotCommand{Command: "admin", Description: "Open the admin console"},
	)
	if _, err := r.bot.Request(cfg); err != nil {
		return fmt.Errorf("set commands: %w", err)
	}
	return nil
}
