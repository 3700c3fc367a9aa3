package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ChannelRef identifies a Telegram channel either by numeric id
// (e.g. -1001234567890) or by public handle (e.g. @mychannel).
// Numeric refs marshal back to JSON numbers so a stored document
// keeps its original shape.
type ChannelRef string

// ChannelFromID builds a ref from a numeric channel id.
func ChannelFromID(id int64) ChannelRef {
	return ChannelRef(strconv.FormatInt(id, 10))
}

func (c ChannelRef) IsHandle() bool { return strings.HasPrefix(string(c), "@") }

// NumericID returns the channel id when the ref is numeric.
func (c ChannelRef) NumericID() (int64, bool) {
	id, err := strconv.ParseInt(string(c), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (c ChannelRef) String() string { return string(c) }

func (c ChannelRef) MarshalJSON() ([]byte, error) {
	if _, ok := c.NumericID(); ok {
		return []byte(c), nil
	}
	return json.Marshal(string(c))
}

func (c *ChannelRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = ChannelRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = ChannelRef(n.String())
	return nil
}

// Operator-facing boolean toggles kept in Document.Settings. Absent
// keys fall back to the defaults below via Document.Setting.
const (
	// SettingGateEnabled turns the subscription gate off entirely
	// (kill switch for incidents with channel permissions).
	SettingGateEnabled = "gate_enabled"
	// SettingPruneBlocked removes unreachable recipients from the user
	// list during broadcasts.
	SettingPruneBlocked = "prune_blocked"
	// SettingReplaceUI deletes the previous bot message before sending
	// the next one, keeping a single visible message per chat.
	SettingReplaceUI = "replace_ui"
)

// Document is the full persistent state of the bot. It is loaded into
// memory as a whole and rewritten as a whole; there is no field-level
// persistence. Unknown top-level fields survive a load/save cycle so
// that export/import never drops data written by other versions.
type Document struct {
	Admins       []int64           `json:"admins"`
	Users        []int64           `json:"users"`
	Banned       []int64           `json:"banned_users"`
	ChannelIDs   []ChannelRef      `json:"channel_ids"`
	ChannelLinks []string          `json:"channel_links"`
	FileURL      string            `json:"file_url"`
	FileID       string            `json:"file_id,omitempty"`
	FileName     string            `json:"file_name,omitempty"`
	Messages     map[string]string `json:"messages"`
	Images       map[string]string `json:"images"`
	Settings     map[string]bool   `json:"settings"`

	extra map[string]json.RawMessage
}

var knownDocumentFields = map[string]struct{}{
	"admins": {}, "users": {}, "banned_users": {},
	"channel_ids": {}, "channel_links": {},
	"file_url": {}, "file_id": {}, "file_name": {},
	"messages": {}, "images": {}, "settings": {},
}

// NewDocument returns an empty document with all collections initialized.
func NewDocument() *Document {
	return &Document{
		Admins:       []int64{},
		Users:        []int64{},
		Banned:       []int64{},
		ChannelIDs:   []ChannelRef{},
		ChannelLinks: []string{},
		Messages:     map[string]string{},
		Images:       map[string]string{},
		Settings:     map[string]bool{},
	}
}

// docFields mirrors Document's known fields for plain JSON codec use,
// avoiding recursion into the custom Marshal/Unmarshal methods.
type docFields struct {
	Admins       []int64           `json:"admins"`
	Users        []int64           `json:"users"`
	Banned       []int64           `json:"banned_users"`
	ChannelIDs   []ChannelRef      `json:"channel_ids"`
	ChannelLinks []string          `json:"channel_links"`
	FileURL      string            `json:"file_url"`
	FileID       string            `json:"file_id,omitempty"`
	FileName     string            `json:"file_name,omitempty"`
	Messages     map[string]string `json:"messages"`
	Images       map[string]string `json:"images"`
	Settings     map[string]bool   `json:"settings"`
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var f docFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = Document{
		Admins:       f.Admins,
		Users:        f.Users,
		Banned:       f.Banned,
		ChannelIDs:   f.ChannelIDs,
		ChannelLinks: f.ChannelLinks,
		FileURL:      f.FileURL,
		FileID:       f.FileID,
		FileName:     f.FileName,
		Messages:     f.Messages,
		Images:       f.Images,
		Settings:     f.Settings,
	}
	d.normalize()
	for k, v := range raw {
		if _, known := knownDocumentFields[k]; known {
			continue
		}
		if d.extra == nil {
			d.extra = map[string]json.RawMessage{}
		}
		d.extra[k] = v
	}
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(docFields{
		Admins:       d.Admins,
		Users:        d.Users,
		Banned:       d.Banned,
		ChannelIDs:   d.ChannelIDs,
		ChannelLinks: d.ChannelLinks,
		FileURL:      d.FileURL,
		FileID:       d.FileID,
		FileName:     d.FileName,
		Messages:     d.Messages,
		Images:       d.Images,
		Settings:     d.Settings,
	})
	if err != nil {
		return nil, err
	}
	if len(d.extra) == 0 {
		return known, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// normalize replaces nil collections so callers can mutate without nil checks.
func (d *Document) normalize() {
	if d.Admins == nil {
		d.Admins = []int64{}
	}
	if d.Users == nil {
		d.Users = []int64{}
	}
	if d.Banned == nil {
		d.Banned = []int64{}
	}
	if d.ChannelIDs == nil {
		d.ChannelIDs = []ChannelRef{}
	}
	if d.ChannelLinks == nil {
		d.ChannelLinks = []string{}
	}
	if d.Messages == nil {
		d.Messages = map[string]string{}
	}
	if d.Images == nil {
		d.Images = map[string]string{}
	}
	if d.Settings == nil {
		d.Settings = map[string]bool{}
	}
}

// Clone returns a deep copy of the document. Mutating the copy never
// touches the snapshot handed out to readers.
func (d *Document) Clone() *Document {
	cp := &Document{
		Admins:       append([]int64{}, d.Admins...),
		Users:        append([]int64{}, d.Users...),
		Banned:       append([]int64{}, d.Banned...),
		ChannelIDs:   append([]ChannelRef{}, d.ChannelIDs...),
		ChannelLinks: append([]string{}, d.ChannelLinks...),
		FileURL:      d.FileURL,
		FileID:       d.FileID,
		FileName:     d.FileName,
		Messages:     make(map[string]string, len(d.Messages)),
		Images:       make(map[string]string, len(d.Images)),
		Settings:     make(map[string]bool, len(d.Settings)),
	}
	for k, v := range d.Messages {
		cp.Messages[k] = v
	}
	for k, v := range d.Images {
		cp.Images[k] = v
	}
	for k, v := range d.Settings {
		cp.Settings[k] = v
	}
	if len(d.extra) > 0 {
		cp.extra = make(map[string]json.RawMessage, len(d.extra))
		for k, v := range d.extra {
			cp.extra[k] = append(json.RawMessage{}, v...)
		}
	}
	return cp
}

// Setting returns the named toggle, falling back to def when unset.
func (d *Document) Setting(key string, def bool) bool {
	if v, ok := d.Settings[key]; ok {
		return v
	}
	return def
}

// HasAdmin reports whether id is in the admin set.
func (d *Document) HasAdmin(id int64) bool { return containsID(d.Admins, id) }

// HasUser reports whether id is a known user.
func (d *Document) HasUser(id int64) bool { return containsID(d.Users, id) }

// IsBanned reports whether id is in the banned set.
func (d *Document) IsBanned(id int64) bool { return containsID(d.Banned, id) }

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
