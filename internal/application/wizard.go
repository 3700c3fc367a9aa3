package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"telegram-gate-bot/internal/domain"
	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/domain/ports/adapter"
	"telegram-gate-bot/internal/domain/ports/repository"
)

// handleWizard interprets the admin's free-form message against the
// cursor that was pending. The caller has already cleared the cursor,
// so a rejected input sends the admin back to the menus instead of
// looping on the prompt.
func (d *Dispatcher) handleWizard(ctx context.Context, msg Message, state repository.WizardState) error {
	var (
		reply string
		next  View
		err   error
	)

	switch state.Step {
	case repository.StepAddChannel:
		reply, err = d.wizardAddChannel(msg)
		next = ChannelsView(d.store.Load())
	case repository.StepEditChannel:
		reply, err = d.wizardEditChannel(msg, state.Index)
		next = ChannelsView(d.store.Load())
	case repository.StepAddLink:
		reply, err = d.wizardAddLink(msg)
		next = LinksView(d.store.Load())
	case repository.StepEditLink:
		reply, err = d.wizardEditLink(msg, state.Index)
		next = LinksView(d.store.Load())
	case repository.StepEditFileURL:
		reply, err = d.wizardFileURL(msg)
		next = FilesView(d.store.Load())
	case repository.StepUploadFile:
		reply, err = d.wizardUploadFile(msg)
		next = FilesView(d.store.Load())
	case repository.StepAddAdmin:
		reply, err = d.wizardAddAdmin(msg)
		next = AdminRootView()
	case repository.StepBanUser:
		reply, err = d.wizardBan(msg, true)
		next = BansView(d.store.Load())
	case repository.StepUnbanUser:
		reply, err = d.wizardBan(msg, false)
		next = BansView(d.store.Load())
	case repository.StepBroadcast:
		return d.wizardBroadcast(ctx, msg)
	case repository.StepEditText:
		reply, err = d.wizardEditText(msg, state.Slot)
		next = TextsView(d.store.Load())
	case repository.StepUploadImage:
		reply, err = d.wizardUploadImage(msg, state.Slot)
		next = ImagesView(d.store.Load())
	case repository.StepImport:
		reply, err = d.wizardImport(ctx, msg)
		next = AdminRootView()
	default:
		d.log.Warn().Str("step", string(state.Step)).Msg("unknown wizard step")
		return nil
	}

	if err != nil {
		if errors.Is(err, domain.ErrSaveFailed) {
			reply = "⚠️ The change may not have been saved. Check the store and try again."
		} else {
			return err
		}
	}
	if _, sendErr := d.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.ChatID, Text: reply}); sendErr != nil {
		return sendErr
	}
	return d.sendView(ctx, msg.ChatID, msg.UserID, next)
}

func (d *Dispatcher) wizardAddChannel(msg Message) (string, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil {
		return "❌ That is not a numeric channel id. Open Channels and try again.", nil
	}
	if err := d.store.AddChannel(model.ChannelFromID(id)); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return "ℹ️ That channel is already configured.", nil
		}
		return "", err
	}
	d.log.Info().Int64("channel", id).Int64("by", msg.UserID).Msg("channel added")
	return "✅ Channel added.", nil
}

func (d *Dispatcher) wizardEditChannel(msg Message, index int) (string, error) {
	text := strings.TrimSpace(msg.Text)
	if strings.EqualFold(text, "delete") {
		if err := d.store.RemoveChannel(index); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return "❌ That channel no longer exists.", nil
			}
			return "", err
		}
		return "🗑 Channel removed.", nil
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return "❌ Send a numeric id, or <code>delete</code>. Open Channels and try again.", nil
	}
	if err := d.store.SetChannel(index, model.ChannelFromID(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "❌ That channel no longer exists.", nil
		}
		return "", err
	}
	return "✅ Channel updated.", nil
}

func (d *Dispatcher) wizardAddLink(msg Message) (string, error) {
	link := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(link, "http") {
		return "❌ The link must start with <code>http</code>. Open Links and try again.", nil
	}
	if err := d.store.AddLink(link); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return "ℹ️ That link is already configured.", nil
		}
		return "", err
	}
	return "✅ Link added.", nil
}

func (d *Dispatcher) wizardEditLink(msg Message, index int) (string, error) {
	text := strings.TrimSpace(msg.Text)
	if strings.EqualFold(text, "delete") {
		if err := d.store.RemoveLink(index); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return "❌ That link no longer exists.", nil
			}
			return "", err
		}
		return "🗑 Link removed.", nil
	}
	if !strings.HasPrefix(text, "http") {
		return "❌ Send a link starting with <code>http</code>, or <code>delete</code>.", nil
	}
	if err := d.store.SetLink(index, text); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "❌ That link no longer exists.", nil
		}
		return "", err
	}
	return "✅ Link updated.", nil
}

func (d *Dispatcher) wizardFileURL(msg Message) (string, error) {
	url := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(url, "http") {
		return "❌ The URL must start with <code>http</code>. Open Files and try again.", nil
	}
	if err := d.store.SetFileURL(url); err != nil {
		return "", err
	}
	d.log.Info().Str("url", url).Int64("by", msg.UserID).Msg("file url changed")
	return "✅ File URL updated.", nil
}

func (d *Dispatcher) wizardUploadFile(msg Message) (string, error) {
	if msg.DocumentID == "" {
		return "❌ Send the file as a document attachment. Open Files and try again.", nil
	}
	if err := d.store.SetUploadedFile(msg.DocumentID, msg.DocumentName); err != nil {
		return "", err
	}
	d.log.Info().Str("name", msg.DocumentName).Int64("by", msg.UserID).Msg("uploaded file set")
	return fmt.Sprintf("✅ <b>%s</b> will now be served instead of the URL.", msg.DocumentName), nil
}

// wizardAddAdmin resolves the new admin id with a fixed priority:
// forward origin, then reply origin, then a numeric id in the text.
// Forwards from channels carry no usable user id and are rejected.
func (d *Dispatcher) wizardAddAdmin(msg Message) (string, error) {
	var id int64
	switch {
	case msg.ForwardFromChannel:
		return "❌ That is a channel forward, not a user. Forward a message written by the person.", nil
	case msg.ForwardFromID != 0:
		id = msg.ForwardFromID
	case msg.ReplyToUserID != 0:
		id = msg.ReplyToUserID
	default:
		parsed, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
		if err != nil {
			return "❌ Forward a message, reply to one, or send a numeric id. Open Admins and try again.", nil
		}
		id = parsed
	}
	if err := d.store.AddAdmin(id); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return "ℹ️ That user is already an admin.", nil
		}
		return "", err
	}
	d.log.Info().Int64("admin", id).Int64("by", msg.UserID).Msg("admin added")
	return fmt.Sprintf("✅ <code>%d</code> is now an admin.", id), nil
}

func (d *Dispatcher) wizardBan(msg Message, ban bool) (string, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil {
		return "❌ Send a numeric user id. Open Bans and try again.", nil
	}
	if ban {
		if err := d.store.BanUser(id); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return "ℹ️ That user is already banned.", nil
			}
			return "", err
		}
		d.log.Info().Int64("banned", id).Int64("by", msg.UserID).Msg("user banned")
		return fmt.Sprintf("🚫 <code>%d</code> is banned.", id), nil
	}
	if err := d.store.UnbanUser(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "ℹ️ That user is not banned.", nil
		}
		return "", err
	}
	d.log.Info().Int64("unbanned", id).Int64("by", msg.UserID).Msg("user unbanned")
	return fmt.Sprintf("♻️ <code>%d</code> is unbanned.", id), nil
}

// wizardBroadcast runs the fan-out inline and edits the status message
// into the final tally.
func (d *Dispatcher) wizardBroadcast(ctx context.Context, msg Message) error {
	payload := model.BroadcastPayload{
		Text:       msg.Text,
		PhotoID:    msg.PhotoID,
		DocumentID: msg.DocumentID,
	}
	if payload.Text == "" {
		payload.Text = msg.Caption
	}
	if payload.IsEmpty() {
		_, err := d.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.ChatID, Text: "❌ Nothing to broadcast. Open Broadcast and try again."})
		return err
	}

	statusID, err := d.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.ChatID, Text: "📨 Broadcasting..."})
	if err != nil {
		return err
	}

	report, err := d.broadcast.Broadcast(ctx, payload)
	if err != nil {
		d.log.Error().Err(err).Msg("broadcast aborted")
	}
	tally := fmt.Sprintf(
		"📨 <b>Broadcast finished</b>\n\n👥 Recipients: <b>%d</b>\n✅ Sent: <b>%d</b>\n❌ Failed: <b>%d</b>\n🧹 Pruned: <b>%d</b>",
		report.Total, report.Sent, report.Failed, report.Pruned)
	if editErr := d.chat.EditMessageText(ctx, msg.ChatID, statusID, tally, nil); editErr != nil {
		_, sendErr := d.chat.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.ChatID, Text: tally})
		return sendErr
	}
	return nil
}

func (d *Dispatcher) wizardEditText(msg Message, slot string) (string, error) {
	if msg.Text == "" {
		return "❌ Send the replacement as plain text. Open Texts and try again.", nil
	}
	if err := d.store.SetMessage(slot, msg.Text); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Text <b>%s</b> updated.", slot), nil
}

func (d *Dispatcher) wizardUploadImage(msg Message, slot string) (string, error) {
	if msg.PhotoID == "" {
		return "❌ Send the replacement as a photo. Open Images and try again.", nil
	}
	if err := d.store.SetImage(slot, msg.PhotoID); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Image <b>%s</b> updated.", slot), nil
}

// wizardImport downloads the attached JSON export and swaps the whole
// document for it.
func (d *Dispatcher) wizardImport(ctx context.Context, msg Message) (string, error) {
	if msg.DocumentID == "" {
		return "❌ Send the exported JSON as a document attachment. Open Import and try again.", nil
	}
	body, err := d.chat.DownloadFile(ctx, msg.DocumentID)
	if err != nil {
		d.log.Error().Err(err).Msg("import download failed")
		return "❌ Could not download the attachment. Try again.", nil
	}
	var doc model.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return "❌ That file is not a valid configuration export.", nil
	}
	if err := d.store.Replace(&doc); err != nil {
		return "", err
	}
	d.log.Info().Int64("by", msg.UserID).Msg("configuration imported")
	return "✅ Configuration imported. The previous one is gone.", nil
}
