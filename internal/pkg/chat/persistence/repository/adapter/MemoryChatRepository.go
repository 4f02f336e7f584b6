package adapter

import (
	"context"
	"sort"
	"sync"
	"time"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"

	"github.com/google/uuid"
)

// MemoryChatRepository is an in-memory ChatRepository used by tests and
// local development. It mirrors the Postgres adapter's observable behavior:
// set semantics for membership, updated_at bumps on every mutation, and the
// latest-message pointer moving with saves.
type MemoryChatRepository struct {
	mu    sync.Mutex
	users map[string]chat.UserView
	convs map[string]*memConversation
	byKey map[string]string
	msgs  map[string]chat.Message
	clock time.Time
}

type memConversation struct {
	conv         chat.Conversation
	participants []string
}

func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{
		users: make(map[string]chat.UserView),
		convs: make(map[string]*memConversation),
		byKey: make(map[string]string),
		msgs:  make(map[string]chat.Message),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

var _ repository.ChatRepository = (*MemoryChatRepository)(nil)

// SeedUser registers a user profile so views can be resolved against it.
func (r *MemoryChatRepository) SeedUser(u chat.UserView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

// tick advances the logical clock so successive mutations order strictly.
func (r *MemoryChatRepository) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *MemoryChatRepository) nextID() string {
	return uuid.NewString()
}

func (r *MemoryChatRepository) ResolveDirect(_ context.Context, directKey, userA, userB string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byKey[directKey]; ok {
		return id, false, nil
	}
	for _, uid := range []string{userA, userB} {
		if _, ok := r.users[uid]; !ok {
			return "", false, repository.ErrNotFound
		}
	}

	now := r.tick()
	id := r.nextID()
	key := directKey
	r.convs[id] = &memConversation{
		conv: chat.Conversation{
			ID:        id,
			Kind:      chat.KindDirect,
			DirectKey: &key,
			CreatedAt: now,
			UpdatedAt: now,
		},
		participants: []string{userA, userB},
	}
	r.byKey[directKey] = id
	return id, true, nil
}

func (r *MemoryChatRepository) CreateGroup(_ context.Context, name, adminID string, memberIDs []string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, uid := range memberIDs {
		if _, ok := r.users[uid]; !ok {
			return "", repository.ErrNotFound
		}
	}

	now := r.tick()
	id := r.nextID()
	admin := adminID
	r.convs[id] = &memConversation{
		conv: chat.Conversation{
			ID:        id,
			Kind:      chat.KindGroup,
			Name:      name,
			AdminID:   &admin,
			CreatedAt: now,
			UpdatedAt: now,
		},
		participants: append([]string(nil), memberIDs...),
	}
	return id, nil
}

func (r *MemoryChatRepository) GetConversation(_ context.Context, conversationID string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.convs[conversationID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	conv := rec.conv
	return &conv, nil
}

func (r *MemoryChatRepository) GetConversationView(_ context.Context, conversationID string) (*chat.ConversationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.convs[conversationID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := r.viewLocked(rec)
	return &v, nil
}

func (r *MemoryChatRepository) ListForUser(_ context.Context, userID string) ([]chat.ConversationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var views []chat.ConversationView
	for _, rec := range r.convs {
		for _, p := range rec.participants {
			if p == userID {
				views = append(views, r.viewLocked(rec))
				break
			}
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].UpdatedAt.After(views[j].UpdatedAt)
	})
	return views, nil
}

func (r *MemoryChatRepository) Rename(_ context.Context, conversationID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.convs[conversationID]
	if !ok {
		return repository.ErrNotFound
	}
	rec.conv.Name = name
	rec.conv.UpdatedAt = r.tick()
	return nil
}

func (r *MemoryChatRepository) AddParticipant(_ context.Context, conversationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.convs[conversationID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.users[userID]; !ok {
		return repository.ErrNotFound
	}
	rec.conv.UpdatedAt = r.tick()
	for _, p := range rec.participants {
		if p == userID {
			return nil
		}
	}
	rec.participants = append(rec.participants, userID)
	return nil
}

func (r *MemoryChatRepository) RemoveParticipant(_ context.Context, conversationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.convs[conversationID]
	if !ok {
		return repository.ErrNotFound
	}
	rec.conv.UpdatedAt = r.tick()
	kept := rec.participants[:0]
	for _, p := range rec.participants {
		if p != userID {
			kept = append(kept, p)
		}
	}
	rec.participants = kept
	return nil
}

func (r *MemoryChatRepository) IsParticipant(_ context.Context, conversationID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.convs[conversationID]
	if !ok {
		return false, nil
	}
	for _, p := range rec.participants {
		if p == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryChatRepository) SaveMessage(_ context.Context, m chat.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.convs[m.ConversationID]
	if !ok {
		return "", repository.ErrNotFound
	}
	now := r.tick()
	id := r.nextID()
	m.ID = id
	m.CreatedAt = now
	r.msgs[id] = m
	rec.conv.LatestMessageID = &id
	rec.conv.UpdatedAt = now
	return id, nil
}

func (r *MemoryChatRepository) GetMessagesByConversation(_ context.Context, conversationID string, limit, offset int) ([]chat.MessageView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var msgs []chat.MessageView
	for _, m := range r.msgs {
		if m.ConversationID == conversationID {
			msgs = append(msgs, r.messageViewLocked(m))
		}
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	if offset >= len(msgs) {
		return nil, nil
	}
	msgs = msgs[offset:]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (r *MemoryChatRepository) viewLocked(rec *memConversation) chat.ConversationView {
	v := chat.ConversationView{
		ID:        rec.conv.ID,
		Kind:      rec.conv.Kind,
		Name:      rec.conv.Name,
		CreatedAt: rec.conv.CreatedAt,
		UpdatedAt: rec.conv.UpdatedAt,
	}
	for _, p := range rec.participants {
		if u, ok := r.users[p]; ok {
			v.Participants = append(v.Participants, u)
		}
	}
	if rec.conv.AdminID != nil {
		if u, ok := r.users[*rec.conv.AdminID]; ok {
			admin := u
			v.Admin = &admin
		}
	}
	if rec.conv.LatestMessageID != nil {
		if m, ok := r.msgs[*rec.conv.LatestMessageID]; ok {
			mv := r.messageViewLocked(m)
			v.LatestMessage = &mv
		}
	}
	return v
}

func (r *MemoryChatRepository) messageViewLocked(m chat.Message) chat.MessageView {
	return chat.MessageView{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Body:           m.Body,
		MsgType:        m.MsgType,
		AttachmentURL:  m.AttachmentURL,
		CreatedAt:      m.CreatedAt,
		Sender:         r.users[m.SenderID],
	}
}
