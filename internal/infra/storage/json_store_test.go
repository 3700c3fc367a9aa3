package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"telegram-gate-bot/internal/domain"
	"telegram-gate-bot/internal/domain/model"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) (*JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot_data.json")
	logger := zerolog.Nop()
	return NewJSONStore(path, 111, &logger), path
}

func TestJSONStore_LoadDefaultsAndRepair(t *testing.T) {
	t.Run("missing file yields default document with primary admin", func(t *testing.T) {
		store, path := newTestStore(t)
		doc := store.Load()
		if !doc.HasAdmin(111) {
			t.Fatalf("primary admin must be in the default document")
		}
		// The repair is persisted immediately.
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("repair was not written to disk: %v", err)
		}
		if !strings.Contains(string(b), "111") {
			t.Fatalf("persisted document lacks primary admin: %s", b)
		}
	})

	t.Run("document stripped of primary admin is repaired on load", func(t *testing.T) {
		store, path := newTestStore(t)
		seed := model.NewDocument()
		seed.Admins = []int64{222}
		b, _ := json.Marshal(seed)
		if err := os.WriteFile(path, b, 0o644); err != nil {
			t.Fatal(err)
		}

		doc := store.Load()
		if !doc.HasAdmin(111) || !doc.HasAdmin(222) {
			t.Fatalf("want both admins, got %v", doc.Admins)
		}
	})

	t.Run("malformed file falls back to defaults", func(t *testing.T) {
		store, path := newTestStore(t)
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		doc := store.Load()
		if len(doc.Users) != 0 || !doc.HasAdmin(111) {
			t.Fatalf("expected fresh default document, got %+v", doc)
		}
	})
}

func TestJSONStore_AdminsAndBans(t *testing.T) {
	store, _ := newTestStore(t)

	t.Run("add admin is idempotent", func(t *testing.T) {
		if err := store.AddAdmin(5); err != nil {
			t.Fatalf("first add: %v", err)
		}
		if err := store.AddAdmin(5); !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("want ErrAlreadyExists, got %v", err)
		}
		if !store.IsAdmin(5) {
			t.Fatalf("admin lookup failed after add")
		}
	})

	t.Run("remove admin", func(t *testing.T) {
		if err := store.RemoveAdmin(5); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if err := store.RemoveAdmin(5); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("ban and unban", func(t *testing.T) {
		if err := store.BanUser(9); err != nil {
			t.Fatalf("ban: %v", err)
		}
		if !store.IsBanned(9) {
			t.Fatalf("user should be banned")
		}
		if err := store.BanUser(9); !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("want ErrAlreadyExists, got %v", err)
		}
		if err := store.UnbanUser(9); err != nil {
			t.Fatalf("unban: %v", err)
		}
		if store.IsBanned(9) {
			t.Fatalf("user should not be banned after unban")
		}
		if err := store.UnbanUser(9); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestJSONStore_ChannelsAndLinks(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.AddChannel(model.ChannelFromID(-100123)); err != nil {
		t.Fatalf("add channel: %v", err)
	}
	if err := store.AddChannel(model.ChannelFromID(-100123)); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
	if err := store.SetChannel(0, model.ChannelFromID(-100999)); err != nil {
		t.Fatalf("set channel: %v", err)
	}
	if err := store.SetChannel(5, model.ChannelFromID(-1)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("out-of-range set must be ErrNotFound, got %v", err)
	}
	if got := store.Load().ChannelIDs; len(got) != 1 || got[0] != model.ChannelFromID(-100999) {
		t.Fatalf("channel list mismatch: %v", got)
	}
	if err := store.RemoveChannel(0); err != nil {
		t.Fatalf("remove channel: %v", err)
	}
	if err := store.RemoveChannel(0); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if err := store.AddLink("https://t.me/a"); err != nil {
		t.Fatalf("add link: %v", err)
	}
	if err := store.SetLink(0, "https://t.me/b"); err != nil {
		t.Fatalf("set link: %v", err)
	}
	if err := store.RemoveLink(0); err != nil {
		t.Fatalf("remove link: %v", err)
	}
}

func TestJSONStore_FileAndOverrides(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.SetFileURL("https://example.com/app.exe"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetUploadedFile("file-id-1", "app.exe"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetMessage("welcome", "hello"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetMessage("  ", "x"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank slot must be rejected, got %v", err)
	}
	if err := store.SetImage("main", "photo-id"); err != nil {
		t.Fatal(err)
	}

	doc := store.Load()
	if doc.FileURL != "https://example.com/app.exe" || doc.FileID != "file-id-1" || doc.FileName != "app.exe" {
		t.Fatalf("file settings mismatch: %+v", doc)
	}
	if doc.Messages["welcome"] != "hello" || doc.Images["main"] != "photo-id" {
		t.Fatalf("overrides mismatch: %+v", doc)
	}
}

func TestJSONStore_ToggleSetting(t *testing.T) {
	store, _ := newTestStore(t)

	v, err := store.ToggleSetting(model.SettingGateEnabled, true)
	if err != nil {
		t.Fatal(err)
	}
	if v {
		t.Fatalf("first toggle from default true must yield false")
	}
	v, err = store.ToggleSetting(model.SettingGateEnabled, true)
	if err != nil {
		t.Fatal(err)
	}
	if !v {
		t.Fatalf("second toggle must yield true")
	}
}

// Raw Save keeps full-replace semantics: two snapshots taken before
// either write means the second write erases the first one's change.
func TestJSONStore_RawSaveLastWriteWins(t *testing.T) {
	store, _ := newTestStore(t)

	a := store.Load()
	b := store.Load()

	a.Users = append(a.Users, 1)
	if err := store.Save(a); err != nil {
		t.Fatal(err)
	}
	b.Banned = append(b.Banned, 2)
	if err := store.Save(b); err != nil {
		t.Fatal(err)
	}

	doc := store.Load()
	if doc.HasUser(1) {
		t.Fatalf("stale snapshot save should have erased the first write")
	}
	if !doc.IsBanned(2) {
		t.Fatalf("second write must survive")
	}
}

// Unknown top-level fields written by other versions survive mutations.
func TestJSONStore_UnknownFieldsSurviveMutation(t *testing.T) {
	store, path := newTestStore(t)
	seed := `{"admins":[111],"users":[],"banned_users":[],"channel_ids":[],"channel_links":[],"file_url":"","messages":{},"images":{},"settings":{},"legacy_field":{"keep":"me"}}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := store.AddUser(42); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "legacy_field") {
		t.Fatalf("mutation dropped unknown field: %s", b)
	}
}
