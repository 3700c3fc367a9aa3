package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"telegram-gate-bot/internal/domain"
	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/domain/ports/adapter"
	"telegram-gate-bot/internal/domain/ports/repository"
	"telegram-gate-bot/internal/infra/logging"
	"telegram-gate-bot/internal/infra/state"
	"telegram-gate-bot/internal/usecase"

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
	return s.mutate(func(doc *model.Document) error { return removeFrom(&doc.Admins, id) })
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
	return s.mutate(func(doc *model.Document) error { return removeFrom(&doc.Users, id) })
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
	return s.mutate(func(doc *model.Document) error { return removeFrom(&doc.Banned, id) })
}

func (s *memStore) AddChannel(ref model.ChannelRef) error {
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
		for _, l := range doc.ChannelLinks {
			if l == url {
				return domain.ErrAlreadyExists
			}
		}
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
	return s.mutate(func(doc *model.Document) error { doc.FileURL = url; return nil })
}

func (s *memStore) SetUploadedFile(fileID, fileName string) error {
	return s.mutate(func(doc *model.Document) error {
		doc.FileID = fileID
		doc.FileName = fileName
		return nil
	})
}

func (s *memStore) SetMessage(slot, text string) error {
	return s.mutate(func(doc *model.Document) error { doc.Messages[slot] = text; return nil })
}

func (s *memStore) SetImage(slot, fileID string) error {
	return s.mutate(func(doc *model.Document) error { doc.Images[slot] = fileID; return nil })
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
// ---------------- chat client fake ----------------
//

type fakeSent struct {
	ID      int
	ChatID  int64
	Kind    string // text | photo | document
	Text    string
	Name    string
	Bytes   []byte
	Buttons []string // callback tags in row order
}

type fakeAnswer struct {
	Text  string
	Alert bool
}

type fakeChat struct {
	mu sync.Mutex

	nextID   int
	sent     []fakeSent
	deleted  []int
	edits    []fakeSent
	answers  []fakeAnswer
	photoErr error
	editErr  error

	memberStatus map[string]string
	memberErr    map[string]error
	download     []byte
	downloadErr  error
}

var _ adapter.ChatClient = (*fakeChat)(nil)

func newFakeChat() *fakeChat {
	return &fakeChat{
		memberStatus: map[string]string{},
		memberErr:    map[string]error{},
	}
}

func memberKey(ch model.ChannelRef, userID int64) string {
	return fmt.Sprintf("%s:%d", ch, userID)
}

// buttonTags flattens a keyboard into callback tags; URL buttons are
// recorded with a url: prefix.
func buttonTags(rows [][]adapter.InlineButton) []string {
	var tags []string
	for _, r := range rows {
		for _, b := range r {
			switch {
			case b.Data != "":
				tags = append(tags, b.Data)
			case b.URL != "":
				tags = append(tags, "url:"+b.URL)
			}
		}
	}
	return tags
}

func (f *fakeChat) push(s fakeSent) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s.ID = f.nextID
	f.sent = append(f.sent, s)
	return s.ID
}

func (f *fakeChat) last() fakeSent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return fakeSent{}
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeChat) lastOfKind(kind string) (fakeSent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].Kind == kind {
			return f.sent[i], true
		}
	}
	return fakeSent{}, false
}

func (f *fakeChat) SendMessage(_ context.Context, p adapter.SendMessageParams) (int, error) {
	return f.push(fakeSent{ChatID: p.ChatID, Kind: "text", Text: p.Text, Buttons: buttonTags(p.Rows)}), nil
}

func (f *fakeChat) SendPhoto(_ context.Context, p adapter.SendPhotoParams) (int, error) {
	if f.photoErr != nil {
		return 0, f.photoErr
	}
	return f.push(fakeSent{ChatID: p.ChatID, Kind: "photo", Text: p.Caption, Buttons: buttonTags(p.Rows)}), nil
}

func (f *fakeChat) SendDocument(_ context.Context, p adapter.SendDocumentParams) (int, error) {
	return f.push(fakeSent{ChatID: p.ChatID, Kind: "document", Text: p.Caption, Name: p.Name, Bytes: p.Bytes, Buttons: buttonTags(p.Rows)}), nil
}

func (f *fakeChat) EditMessageText(_ context.Context, chatID int64, messageID int, text string, rows [][]adapter.InlineButton) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, fakeSent{ID: messageID, ChatID: chatID, Kind: "edit", Text: text, Buttons: buttonTags(rows)})
	return nil
}

func (f *fakeChat) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeChat) AnswerCallback(_ context.Context, _, text string, alert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, fakeAnswer{Text: text, Alert: alert})
	return nil
}

func (f *fakeChat) ChatMemberStatus(_ context.Context, ch model.ChannelRef, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := memberKey(ch, userID)
	if err, ok := f.memberErr[key]; ok {
		return "", err
	}
	if st, ok := f.memberStatus[key]; ok {
		return st, nil
	}
	return "left", nil
}

func (f *fakeChat) GetChat(_ context.Context, chatID int64) (*adapter.ChatInfo, error) {
	return &adapter.ChatInfo{ID: chatID, Username: fmt.Sprintf("user%d", chatID)}, nil
}

func (f *fakeChat) DownloadFile(_ context.Context, _ string) ([]byte, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.download, nil
}

func (f *fakeChat) SetCommands(_ context.Context) error { return nil }

//
// ---------------- fetcher fake ----------------
//

type fakeFetcher struct {
	name  string
	body  []byte
	err   error
	calls int
}

var _ adapter.InstallerFetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (string, []byte, error) {
	f.calls++
	if f.err != nil {
		return "", nil, f.err
	}
	return f.name, f.body, nil
}

//
// ---------------- wiring helper ----------------
//

type fixture struct {
	store    *memStore
	chat     *fakeChat
	registry *state.MemoryRegistry
	fetcher  *fakeFetcher
	disp     *Dispatcher
}

func newFixture(opts Options) *fixture {
	store := newMemStore()
	chat := newFakeChat()
	registry := state.NewMemoryRegistry()
	fetcher := &fakeFetcher{name: "installer.exe", body: []byte("binary")}
	logger := nopLogger()

	subs := usecase.NewSubscriptionUseCase(store, chat, "", logger)
	broadcast := usecase.NewBroadcastUseCase(store, chat, logger)
	stats := usecase.NewStatsUseCase(store, logger)

	disp := NewDispatcher(
		chat, store, registry,
		subs, broadcast, stats,
		fetcher, logging.NewRingHook(10),
		opts, logger,
	)
	return &fixture{store: store, chat: chat, registry: registry, fetcher: fetcher, disp: disp}
}

var errBlocked = errors.New("Forbidden: bot was blocked by the user")
