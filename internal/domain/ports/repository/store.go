package repository

import "telegram-gate-bot/internal/domain/model"

// StoreRepository is the port over the single persistent document.
// Every mutator is a full load→mutate→save cycle executed under the
// store's own lock; there is no cross-call transaction. Mutators on
// set-like collections return domain.ErrAlreadyExists /
// domain.ErrNotFound for no-op adds and removes, and wrap
// domain.ErrSaveFailed when the rewrite did not reach disk.
type StoreRepository interface {
	// Load returns a snapshot of the current document, synthesizing a
	// default one (primary admin included) when the file is missing or
	// unreadable.
	Load() *model.Document
	// Save serializes the full document, replacing whatever is on disk.
	Save(doc *model.Document) error
	// Replace swaps the whole document for an imported one. No merge.
	Replace(doc *model.Document) error

	IsAdmin(id int64) bool
	AddAdmin(id int64) error
	RemoveAdmin(id int64) error

	AddUser(id int64) error
	RemoveUser(id int64) error

	IsBanned(id int64) bool
	BanUser(id int64) error
	UnbanUser(id int64) error

	AddChannel(ref model.ChannelRef) error
	SetChannel(index int, ref model.ChannelRef) error
	RemoveChannel(index int) error

	AddLink(url string) error
	SetLink(index int, url string) error
	RemoveLink(index int) error

	SetFileURL(url string) error
	SetUploadedFile(fileID, fileName string) error

	SetMessage(slot, text string) error
	SetImage(slot, fileID string) error
	ToggleSetting(key string, def bool) (bool, error)
}
