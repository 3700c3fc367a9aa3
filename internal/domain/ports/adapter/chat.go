package adapter

import (
	"context"

	"telegram-gate-bot/internal/domain/model"
)

// InlineButton is one platform-agnostic inline keyboard button. Data
// and URL are mutually exclusive: a Data button dispatches a callback
// action tag, a URL button opens a link.
type InlineButton struct {
	Text string
	Data string
	URL  string
}

type SendMessageParams struct {
	ChatID int64
	Text   string
	Rows   [][]InlineButton
}

// SendPhotoParams references the image either by uploaded-asset file id
// (preferred when set) or by a bundled file path on disk.
type SendPhotoParams struct {
	ChatID  int64
	FileID  string
	Path    string
	Caption string
	Rows    [][]InlineButton
}

// SendDocumentParams references the document by file id or carries the
// raw bytes with a file name.
type SendDocumentParams struct {
	ChatID  int64
	FileID  string
	Name    string
	Bytes   []byte
	Caption string
	Rows    [][]InlineButton
}

// ChatInfo is the live profile slice fetched from the platform; it is
// never cached or persisted.
type ChatInfo struct {
	ID        int64
	Username  string
	FirstName string
}

// ChatClient is the port over the chat platform. Send operations return
// the platform message id so the dispatcher can keep its
// replace-in-place discipline.
type ChatClient interface {
	SendMessage(ctx context.Context, p SendMessageParams) (int, error)
	SendPhoto(ctx context.Context, p SendPhotoParams) (int, error)
	SendDocument(ctx context.Context, p SendDocumentParams) (int, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, rows [][]InlineButton) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error

	// ChatMemberStatus returns the raw membership status of userID in
	// the given channel (numeric id or @handle).
	ChatMemberStatus(ctx context.Context, channel model.ChannelRef, userID int64) (string, error)
	// GetChat fetches live display info for a user or chat id.
	GetChat(ctx context.Context, chatID int64) (*ChatInfo, error)
	// DownloadFile fetches the bytes of an uploaded platform asset.
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)

	SetCommands(ctx context.Context) error
}
