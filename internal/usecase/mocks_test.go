package usecase

import (
	"context"
	"fmt"
	"sync"

	"telegram-gate-bot/internal/domain"
	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/domain/ports/adapter"
	"telegram-gate-bot/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

//
// ---------------- in-memory store ----------------
//

type memStore struct {
	mu  sync.Mutex
	doc *model.Document
}

var _ repository.StoreRepository = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{doc: model.NewDocument()}
}

func (s *memStore) Load() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *memStore) Save(doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	return nil
}

func (s *memStore) Replace(doc *model.Document) error { return s.Save(doc) }

func (s *memStore) mutate(fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.doc)
}

func (s *memStore) IsAdmin(id int64) bool { return s.Load().HasAdmin(id) }

func (s *memStore) AddAdmin(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		if doc.HasAdmin(id) {
			return domain.ErrAlreadyExists
		}
		doc.Admins = append(doc.Admins, id)
		return nil
	})
}

func (s *memStore) RemoveAdmin(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		return removeFrom(&doc.Admins, id)
	})
}

func (s *memStore) AddUser(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		if doc.HasUser(id) {
			return domain.ErrAlreadyExists
		}
		doc.Users = append(doc.Users, id)
		return nil
	})
}

func (s *memStore) RemoveUser(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		return removeFrom(&doc.Users, id)
	})
}

func (s *memStore) IsBanned(id int64) bool { return s.Load().IsBanned(id) }

func (s *memStore) BanUser(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		if doc.IsBanned(id) {
			return domain.ErrAlreadyExists
		}
		doc.Banned = append(doc.Banned, id)
		return nil
	})
}

func (s *memStore) UnbanUser(id int64) error {
	return s.mutate(func(doc *model.Document) error {
		return removeFrom(&doc.Banned, id)
	})
}

func (s *memStore) AddChannel(ref model.ChannelRef) error {
	return s.mutate(func(doc *model.Document) error {
		doc.ChannelIDs = append(doc.ChannelIDs, ref)
		return nil
	})
}

func (s *memStore) SetChannel(index int, ref model.ChannelRef) error {
	return s.mutate(func(doc *model.Document) error {
		if index < 0 || index >= len(doc.ChannelIDs) {
			return domain.ErrNotFound
		}
		doc.ChannelIDs[index] = ref
		return nil
	})
}

func (s *memStore) RemoveChannel(index int) error {
	return s.mutate(func(doc *model.Document) error {
		if index < 0 || index >= len(doc.ChannelIDs) {
			return domain.ErrNotFound
		}
		doc.ChannelIDs = append(doc.ChannelIDs[:index], doc.ChannelIDs[index+1:]...)
		return nil
	})
}

func (s *memStore) AddLink(url string) error {
	return s.mutate(func(doc *model.Document) error {
		doc.ChannelLinks = append(doc.ChannelLinks, url)
		return nil
	})
}

func (s *memStore) SetLink(index int, url string) error {
	return s.mutate(func(doc *model.Document) error {
		if index < 0 || index >= len(doc.ChannelLinks) {
			return domain.ErrNotFound
		}
		doc.ChannelLinks[index] = url
		return nil
	})
}

func (s *memStore) RemoveLink(index int) error {
	return s.mutate(func(doc *model.Document) error {
		if index < 0 || index >= len(doc.ChannelLinks) {
			return domain.ErrNotFound
		}
		doc.ChannelLinks = append(doc.ChannelLinks[:index], doc.ChannelLinks[index+1:]...)
		return nil
	})
}

func (s *memStore) SetFileURL(url string) error {
	return s.mutate(func(doc *model.Document) error {
		doc.FileURL = url
		return nil
	})
}

func (s *memStore) SetUploadedFile(fileID, fileName string) error {
	return s.mutate(func(doc *model.Document) error {
		doc.FileID = fileID
		doc.FileName = fileName
		return nil
	})
}

func (s *memStore) SetMessage(slot, text string) error {
	return s.mutate(func(doc *model.Document) error {
		doc.Messages[slot] = text
		return nil
	})
}

func (s *memStore) SetImage(slot, fileID string) error {
	return s.mutate(func(doc *model.Document) error {
		doc.Images[slot] = fileID
		return nil
	})
}

func (s *memStore) ToggleSetting(key string, def bool) (bool, error) {
	var next bool
	err := s.mutate(func(doc *model.Document) error {
		next = !doc.Setting(key, def)
		doc.Settings[key] = next
		return nil
	})
	return next, err
}

func removeFrom(ids *[]int64, id int64) error {
	for i, v := range *ids {
		if v == id {
			*ids = append((*ids)[:i], (*ids)[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

//
// ---------------- chat client mock ----------------
//

type sentRecord struct {
	ChatID int64
	Kind   string // text | photo | document
	Text   string
}

type mockChat struct {
	mu sync.Mutex

	sent    []sentRecord
	nextID  int
	sendErr map[int64]error // per-chat delivery failure

	memberStatus map[string]string // "channel:user" -> status
	memberErr    map[string]error
}

var _ adapter.ChatClient = (*mockChat)(nil)

func newMockChat() *mockChat {
	return &mockChat{
		sendErr:      map[int64]error{},
		memberStatus: map[string]string{},
		memberErr:    map[string]error{},
	}
}

func memberKey(ch model.ChannelRef, userID int64) string {
	return fmt.Sprintf("%s:%d", ch, userID)
}

func (m *mockChat) record(chatID int64, kind, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.sendErr[chatID]; ok {
		return 0, err
	}
	m.nextID++
	m.sent = append(m.sent, sentRecord{ChatID: chatID, Kind: kind, Text: text})
	return m.nextID, nil
}

func (m *mockChat) sentTo(chatID int64) []sentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentRecord
	for _, r := range m.sent {
		if r.ChatID == chatID {
			out = append(out, r)
		}
	}
	return out
}

func (m *mockChat) SendMessage(_ context.Context, p adapter.SendMessageParams) (int, error) {
	return m.record(p.ChatID, "text", p.Text)
}

func (m *mockChat) SendPhoto(_ context.Context, p adapter.SendPhotoParams) (int, error) {
	return m.record(p.ChatID, "photo", p.Caption)
}

func (m *mockChat) SendDocument(_ context.Context, p adapter.SendDocumentParams) (int, error) {
	return m.record(p.ChatID, "document", p.Caption)
}

func (m *mockChat) EditMessageText(_ context.Context, _ int64, _ int, _ string, _ [][]adapter.InlineButton) error {
	return nil
}

func (m *mockChat) DeleteMessage(_ context.Context, _ int64, _ int) error { return nil }

func (m *mockChat) AnswerCallback(_ context.Context, _, _ string, _ bool) error { return nil }

func (m *mockChat) ChatMemberStatus(_ context.Context, ch model.ChannelRef, userID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memberKey(ch, userID)
	if err, ok := m.memberErr[key]; ok {
		return "", err
	}
	if st, ok := m.memberStatus[key]; ok {
		return st, nil
	}
	return "left", nil
}

func (m *mockChat) GetChat(_ context.Context, chatID int64) (*adapter.ChatInfo, error) {
	return &adapter.ChatInfo{ID: chatID}, nil
}

func (m *mockChat) DownloadFile(_ context.Context, _ string) ([]byte, error) { return nil, nil }

func (m *mockChat) SetCommands(_ context.Context) error { return nil }
