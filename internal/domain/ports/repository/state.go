package repository

// WizardStep tags what the next free-form message from an admin will be
// interpreted as. The zero value means no wizard is pending.
type WizardStep string

const (
	StepAddChannel  WizardStep = "add_channel"
	StepEditChannel WizardStep = "edit_channel"
	StepAddLink     WizardStep = "add_link"
	StepEditLink    WizardStep = "edit_link"
	StepEditFileURL WizardStep = "edit_file_url"
	StepUploadFile  WizardStep = "upload_file"
	StepAddAdmin    WizardStep = "add_admin"
	StepBanUser     WizardStep = "ban_user"
	StepUnbanUser   WizardStep = "unban_user"
	StepBroadcast   WizardStep = "broadcast"
	StepEditText    WizardStep = "edit_text"
	StepUploadImage WizardStep = "upload_image"
	StepImport      WizardStep = "import"
)

// WizardState is an admin's pending-input cursor. Index addresses a
// list entry for the edit steps; Slot names a text or image key.
type WizardState struct {
	Step  WizardStep
	Index int
	Slot  string
}

// ConversationRegistry tracks the two pieces of per-user conversation
// state: the admin wizard cursor and the id of the last bot-authored
// message in that chat. Both are memory-only and lost on restart; a
// stale message id simply fails its delete silently.
type ConversationRegistry interface {
	SetWizard(userID int64, state WizardState)
	// Wizard returns the pending cursor, or ok=false when idle.
	Wizard(userID int64) (WizardState, bool)
	ClearWizard(userID int64)

	// TrackMessage records the most recent bot message for the user.
	TrackMessage(userID int64, messageID int)
	// TakeMessage returns and clears the tracked message id.
	TakeMessage(userID int64) (int, bool)
}
