package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"telegram-gate-bot/internal/domain"
	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/domain/ports/repository"
	"telegram-gate-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ repository.StoreRepository = (*JSONStore)(nil)

// JSONStore persists the whole bot document in one JSON file. Each
// mutator runs load→mutate→save under a single mutex, so within this
// process the documented last-write-wins race between stale snapshots
// cannot occur; callers holding their own Load() snapshot and calling
// Save() directly still get the raw replace semantics.
type JSONStore struct {
	mu           sync.Mutex
	path         string
	primaryAdmin int64
	log          *zerolog.Logger
}

func NewJSONStore(path string, primaryAdmin int64, logger *zerolog.Logger) *JSONStore {
	return &JSONStore{path: path, primaryAdmin: primaryAdmin, log: logger}
}

// Load reads the document from disk. A missing or malformed file falls
// back to a fresh default document. The primary admin id is forced into
// the admin set; when that repair changed the document it is persisted
// right away so the roster on disk never lacks the owner.
func (s *JSONStore) Load() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *JSONStore) loadLocked() *model.Document {
	doc := model.NewDocument()
	b, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		// first run
	case err != nil:
		s.log.Error().Err(err).Str("path", s.path).Msg("read store file, falling back to defaults")
	default:
		if err := json.Unmarshal(b, doc); err != nil {
			s.log.Error().Err(err).Str("path", s.path).Msg("malformed store file, falling back to defaults")
			doc = model.NewDocument()
		}
	}
	if s.primaryAdmin != 0 && !doc.HasAdmin(s.primaryAdmin) {
		doc.Admins = append(doc.Admins, s.primaryAdmin)
		if err := s.saveLocked(doc); err != nil {
			s.log.Error().Err(err).Msg("persist primary admin repair")
		}
	}
	return doc
}

// Save rewrites the file with the full document. The write goes through
// a temp file and rename so a crash mid-write cannot leave a truncated
// document behind.
func (s *JSONStore) Save(doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(doc)
}

func (s *JSONStore) saveLocked(doc *model.Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		metrics.StoreSaveFailures.Inc()
		return fmt.Errorf("marshal store document: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		metrics.StoreSaveFailures.Inc()
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		metrics.StoreSaveFailures.Inc()
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	metrics.StoreSaves.Inc()
	return nil
}

// Replace swaps the whole document for an imported one.
func (s *JSONStore) Replace(doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc == nil {
		return domain.ErrInvalidInput
	}
	if s.primaryAdmin != 0 && !doc.HasAdmin(s.primaryAdmin) {
		doc.Admins = append(doc.Admins, s.primaryAdmin)
	}
	return s.saveLocked(doc)
}

// mutate is the single read-modify-write unit every accessor goes
// through. fn returns domain errors for no-op mutations.
func (s *JSONStore) mutate(fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.loadLocked()
	if err := fn(doc); err != nil {
		return err
	}
	return s.saveLocked(doc)
}

func (s *JSONStore) IsAdmin(id int64) bool { return s.Load().HasAdmin(id) }

func (s *JSONStore) AddAdmin(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		if doc.HasAdmin(id) {
			return domain.ErrAlreadyExists
		}
		doc.Admins = append(doc.Admins, id)
		return nil
	})
}

func (s *JSONStore) RemoveAdmin(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		next, removed := removeID(doc.Admins, id)
		if !removed {
			return domain.ErrNotFound
		}
		doc.Admins = next
		return nil
	})
}

func (s *JSONStore) AddUser(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		if doc.HasUser(id) {
			return domain.ErrAlreadyExists
		}
		doc.Users = append(doc.Users, id)
		return nil
	})
}

func (s *JSONStore) RemoveUser(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		next, removed := removeID(doc.Users, id)
		if !removed {
			return domain.ErrNotFound
		}
		doc.Users = next
		return nil
	})
}

func (s *JSONStore) IsBanned(id int64) bool { return s.Load().IsBanned(id) }

func (s *JSONStore) BanUser(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		if doc.IsBanned(id) {
			return domain.ErrAlreadyExists
		}
		doc.Banned = append(doc.Banned, id)
		return nil
	})
}

func (s *JSONStore) UnbanUser(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		next, removed := removeID(doc.Banned, id)
		if !removed {
			return domain.ErrNotFound
		}
		doc.Banned = next
		return nil
	})
}

func (s *JSONStore) AddChannel(ref model.ChannelRef) error {
	return s.mutate(func(doc *model.Document) error {
		for _, c := range doc.ChannelIDs {
			if c == ref {
				return domain.ErrAlreadyExists
			}
		}
		doc.ChannelIDs = append(doc.ChannelIDs, ref)
		return nil
	})
}

func (s *JSONStore) SetChannel(index int, ref model.ChannelRef) error {
	return s.mutate(func(doc *model.Document) error {
		if index < 0 || index >= len(doc.ChannelIDs) {
			return domain.ErrNotFound
		}
		doc.ChannelIDs[index] = ref
		return nil
	})
}

func (s *JSONStore) RemoveChannel(index int) error {
	return s.mutate(func(doc *model.Document) error {
		if index < 0 || index >= len(doc.ChannelIDs) {
			return domain.ErrNotFound
		}
		doc.ChannelIDs = append(doc.ChannelIDs[:index], doc.ChannelIDs[index+1:]...)
		return nil
	})
}

func (s *JSONStore) AddLink(url string) error {
	return s.mutate(func(doc *model.Document) error {
		for _, l := range doc.ChannelLinks {
			if l == url {
				return domain.ErrAlreadyExists
			}
		}
		doc.ChannelLinks = append(doc.ChannelLinks, url)
		return nil
	})
}

func (s *JSONStore) SetLink(index int, url string) error {
	return s.mutate(func(doc *model.Document) error {
		if index < 0 || index >= len(doc.ChannelLinks) {
			return domain.ErrNotFound
		}
		doc.ChannelLinks[index] = url
		return nil
	})
}

func (s *JSONStore) RemoveLink(index int) error {
	return s.mutate(func(doc *model.Document) error {
		if index < 0 || index >= len(doc.ChannelLinks) {
			return domain.ErrNotFound
		}
		doc.ChannelLinks = append(doc.ChannelLinks[:index], doc.ChannelLinks[index+1:]...)
		return nil
	})
}

func (s *JSONStore) SetFileURL(url string) error {
	return s.mutate(func(doc *model.Document) error {
		doc.FileURL = url
		return nil
	})
}

func (s *JSONStore) SetUploadedFile(fileID, fileName string) error {
	return s.mutate(func(doc *model.Document) error {
		doc.FileID = fileID
		doc.FileName = fileName
		return nil
	})
}

func (s *JSONStore) SetMessage(slot, text string) error {
	return s.mutate(func(doc *model.Document) error {
		if strings.TrimSpace(slot) == "" {
			return domain.ErrInvalidInput
		}
		doc.Messages[slot] = text
		return nil
	})
}

func (s *JSONStore) SetImage(slot, fileID string) error {
	return s.mutate(func(doc *model.Document) error {
		if strings.TrimSpace(slot) == "" {
			return domain.ErrInvalidInput
		}
		doc.Images[slot] = fileID
		return nil
	})
}

func (s *JSONStore) ToggleSetting(key string, def bool) (bool, error) {
	var next bool
	err := s.mutate(func(doc *model.Document) error {
		next = !doc.Setting(key, def)
		doc.Settings[key] = next
		return nil
	})
	return next, err
}

func removeID(ids []int64, id int64) ([]int64, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
