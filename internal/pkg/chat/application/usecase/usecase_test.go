package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	cacheport "go-confab/internal/infrastructure/cache/port"
	chat "go-confab/internal/pkg/chat/application/domain"
	"go-confab/internal/pkg/chat/application/usecase"
	"go-confab/internal/pkg/chat/persistence/repository/adapter"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

func newRepo(userIDs ...string) *adapter.MemoryChatRepository {
	repo := adapter.NewMemoryChatRepository()
	for _, id := range userIDs {
		repo.SeedUser(chat.UserView{
			ID:    id,
			Name:  "user " + id,
			Email: id + "@example.com",
			Pic:   "https://example.com/" + id + ".png",
		})
	}
	return repo
}

func strptr(s string) *string { return &s }

func TestResolveDirectCreatesThenReuses(t *testing.T) {
	repo := newRepo("a", "b")
	uc := usecase.NewResolveDirectChatUseCase(repo, nil)
	ctx := context.Background()

	first, err := uc.Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "a", TargetID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Kind != chat.KindDirect {
		t.Errorf("expected direct kind, got %q", first.Kind)
	}
	if len(first.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(first.Participants))
	}
	if first.Admin != nil {
		t.Error("direct conversations must have no admin")
	}

	second, err := uc.Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "a", TargetID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeat resolve returned a different conversation: %q vs %q", second.ID, first.ID)
	}
}

func TestResolveDirectSymmetric(t *testing.T) {
	repo := newRepo("a", "b")
	uc := usecase.NewResolveDirectChatUseCase(repo, nil)
	ctx := context.Background()

	ab, err := uc.Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "a", TargetID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := uc.Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "b", TargetID: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab.ID != ba.ID {
		t.Errorf("resolve is not symmetric: %q vs %q", ab.ID, ba.ID)
	}
}

func TestResolveDirectValidation(t *testing.T) {
	repo := newRepo("a", "b")
	uc := usecase.NewResolveDirectChatUseCase(repo, nil)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "a"}); !errors.Is(err, usecase.ErrInvalidRequest) {
		t.Errorf("missing target: expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "a", TargetID: "a"}); !errors.Is(err, usecase.ErrInvalidRequest) {
		t.Errorf("self target: expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "a", TargetID: "ghost"}); !errors.Is(err, usecase.ErrNotFound) {
		t.Errorf("unknown target: expected ErrNotFound, got %v", err)
	}
}

// countingRepo counts store-level resolves to observe cache hits.
type countingRepo struct {
	repository.ChatRepository
	resolves int
}

func (r *countingRepo) ResolveDirect(ctx context.Context, key, a, b string) (string, bool, error) {
	r.resolves++
	return r.ChatRepository.ResolveDirect(ctx, key, a, b)
}

// mapCache is a minimal in-process port.Cache.
type mapCache struct {
	mu sync.Mutex
	m  map[string]string
}

func newMapCache() *mapCache { return &mapCache{m: make(map[string]string)} }

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return nil
}

func (c *mapCache) Del(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.m[k]; ok {
			delete(c.m, k)
			n++
		}
	}
	return n, nil
}

func (c *mapCache) Ping(context.Context) error { return nil }
func (c *mapCache) Close() error               { return nil }

func TestResolveDirectCachesPairKey(t *testing.T) {
	counting := &countingRepo{ChatRepository: newRepo("a", "b")}
	uc := usecase.NewResolveDirectChatUseCase(counting, newMapCache())
	ctx := context.Background()

	first, err := uc.Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "a", TargetID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "b", TargetID: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("cache returned a different conversation: %q vs %q", second.ID, first.ID)
	}
	if counting.resolves != 1 {
		t.Errorf("expected 1 store resolve, got %d", counting.resolves)
	}
}

func TestCreateGroupFloor(t *testing.T) {
	repo := newRepo("a", "b", "c")
	uc := usecase.NewCreateGroupChatUseCase(repo)
	ctx := context.Background()

	_, err := uc.Execute(ctx, usecase.CreateGroupChatInput{ActorID: "a", MemberIDs: []string{"b"}, Name: "Team"})
	if !errors.Is(err, usecase.ErrInvalidRequest) {
		t.Errorf("single member: expected ErrInvalidRequest, got %v", err)
	}

	view, err := uc.Execute(ctx, usecase.CreateGroupChatInput{ActorID: "a", MemberIDs: []string{"b", "c"}, Name: "Team"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Kind != chat.KindGroup {
		t.Errorf("expected group kind, got %q", view.Kind)
	}
	if view.Name != "Team" {
		t.Errorf("expected name Team, got %q", view.Name)
	}
	if len(view.Participants) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(view.Participants))
	}
	// requested members first, creator last
	if view.Participants[0].ID != "b" || view.Participants[1].ID != "c" || view.Participants[2].ID != "a" {
		t.Errorf("unexpected participant order: %+v", view.Participants)
	}
	if view.Admin == nil || view.Admin.ID != "a" {
		t.Errorf("expected creator as admin, got %+v", view.Admin)
	}
}

func TestCreateGroupRequiresName(t *testing.T) {
	repo := newRepo("a", "b", "c")
	uc := usecase.NewCreateGroupChatUseCase(repo)

	_, err := uc.Execute(context.Background(), usecase.CreateGroupChatInput{ActorID: "a", MemberIDs: []string{"b", "c"}})
	if !errors.Is(err, usecase.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func mkGroup(t *testing.T, repo *adapter.MemoryChatRepository, admin string, members ...string) *chat.ConversationView {
	t.Helper()
	view, err := usecase.NewCreateGroupChatUseCase(repo).Execute(context.Background(), usecase.CreateGroupChatInput{
		ActorID:   admin,
		MemberIDs: members,
		Name:      "Team",
	})
	if err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	return view
}

func TestAddThenRemoveMember(t *testing.T) {
	repo := newRepo("a", "b", "c", "d")
	group := mkGroup(t, repo, "a", "b", "c")
	ctx := context.Background()

	added, err := usecase.NewAddMemberUseCase(repo).Execute(ctx, usecase.AddMemberInput{
		ActorID: "a", ConversationID: group.ID, UserID: "d",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(added.Participants) != 4 {
		t.Fatalf("expected 4 participants after add, got %d", len(added.Participants))
	}

	// adding again is a no-op on membership
	again, err := usecase.NewAddMemberUseCase(repo).Execute(ctx, usecase.AddMemberInput{
		ActorID: "a", ConversationID: group.ID, UserID: "d",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again.Participants) != 4 {
		t.Errorf("duplicate add changed membership: %d participants", len(again.Participants))
	}

	removed, err := usecase.NewRemoveMemberUseCase(repo).Execute(ctx, usecase.RemoveMemberInput{
		ActorID: "a", ConversationID: group.ID, UserID: "d",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed.Participants) != 3 {
		t.Errorf("expected 3 participants after remove, got %d", len(removed.Participants))
	}
	if removed.HasParticipant("d") {
		t.Error("removed member still present")
	}
}

func TestMembershipAuthorization(t *testing.T) {
	repo := newRepo("a", "b", "c", "d", "x")
	group := mkGroup(t, repo, "a", "b", "c")
	ctx := context.Background()

	// outsider cannot add
	_, err := usecase.NewAddMemberUseCase(repo).Execute(ctx, usecase.AddMemberInput{
		ActorID: "x", ConversationID: group.ID, UserID: "d",
	})
	if !errors.Is(err, usecase.ErrForbidden) {
		t.Errorf("outsider add: expected ErrForbidden, got %v", err)
	}

	// non-admin cannot remove others
	_, err = usecase.NewRemoveMemberUseCase(repo).Execute(ctx, usecase.RemoveMemberInput{
		ActorID: "b", ConversationID: group.ID, UserID: "c",
	})
	if !errors.Is(err, usecase.ErrForbidden) {
		t.Errorf("non-admin remove: expected ErrForbidden, got %v", err)
	}

	// but anyone may leave
	left, err := usecase.NewRemoveMemberUseCase(repo).Execute(ctx, usecase.RemoveMemberInput{
		ActorID: "b", ConversationID: group.ID, UserID: "b",
	})
	if err != nil {
		t.Fatalf("self removal failed: %v", err)
	}
	if left.HasParticipant("b") {
		t.Error("participant still present after leaving")
	}
}

func TestMembershipOpsRejectDirect(t *testing.T) {
	repo := newRepo("a", "b", "c")
	ctx := context.Background()
	direct, err := usecase.NewResolveDirectChatUseCase(repo, nil).Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "a", TargetID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := usecase.NewAddMemberUseCase(repo).Execute(ctx, usecase.AddMemberInput{
		ActorID: "a", ConversationID: direct.ID, UserID: "c",
	}); !errors.Is(err, usecase.ErrInvalidRequest) {
		t.Errorf("add on direct: expected ErrInvalidRequest, got %v", err)
	}
	if _, err := usecase.NewRenameGroupUseCase(repo).Execute(ctx, usecase.RenameGroupInput{
		ActorID: "a", ConversationID: direct.ID, Name: "nope",
	}); !errors.Is(err, usecase.ErrInvalidRequest) {
		t.Errorf("rename on direct: expected ErrInvalidRequest, got %v", err)
	}
}

func TestMembershipOpsNotFound(t *testing.T) {
	repo := newRepo("a", "d")
	ctx := context.Background()

	if _, err := usecase.NewAddMemberUseCase(repo).Execute(ctx, usecase.AddMemberInput{
		ActorID: "a", ConversationID: "missing", UserID: "d",
	}); !errors.Is(err, usecase.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := usecase.NewRenameGroupUseCase(repo).Execute(ctx, usecase.RenameGroupInput{
		ActorID: "a", ConversationID: "missing", Name: "x",
	}); !errors.Is(err, usecase.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRenameGroupTouchesOnlyName(t *testing.T) {
	repo := newRepo("a", "b", "c")
	group := mkGroup(t, repo, "a", "b", "c")
	ctx := context.Background()

	renamed, err := usecase.NewRenameGroupUseCase(repo).Execute(ctx, usecase.RenameGroupInput{
		ActorID: "b", ConversationID: group.ID, Name: "New Name",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renamed.Name != "New Name" {
		t.Errorf("expected renamed group, got %q", renamed.Name)
	}
	if len(renamed.Participants) != len(group.Participants) {
		t.Error("rename changed membership")
	}
	if renamed.Admin == nil || renamed.Admin.ID != "a" {
		t.Error("rename changed admin")
	}
	if !renamed.UpdatedAt.After(group.UpdatedAt) {
		t.Error("rename did not bump updated_at")
	}

	if _, err := usecase.NewRenameGroupUseCase(repo).Execute(ctx, usecase.RenameGroupInput{
		ActorID: "b", ConversationID: group.ID, Name: "  ",
	}); !errors.Is(err, usecase.ErrInvalidRequest) {
		t.Errorf("blank name: expected ErrInvalidRequest, got %v", err)
	}
}

func TestListOrdersByActivity(t *testing.T) {
	repo := newRepo("a", "b", "c")
	ctx := context.Background()

	direct, err := usecase.NewResolveDirectChatUseCase(repo, nil).Execute(ctx, usecase.ResolveDirectChatInput{ActorID: "a", TargetID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	group := mkGroup(t, repo, "a", "b", "c")

	// freshly created group is the most recent
	views, err := usecase.NewListChatsUseCase(repo).Execute(ctx, usecase.ListChatsInput{ActorID: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(views))
	}
	if views[0].ID != group.ID {
		t.Errorf("expected group first, got %q", views[0].ID)
	}

	// a message in the direct chat moves it to the top
	if _, err := usecase.NewPostMessageUseCase(repo).Execute(ctx, usecase.PostMessageInput{
		ConversationID: direct.ID, SenderID: "b", Body: strptr("hey"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views, err = usecase.NewListChatsUseCase(repo).Execute(ctx, usecase.ListChatsInput{ActorID: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views[0].ID != direct.ID {
		t.Errorf("expected direct chat first after message, got %q", views[0].ID)
	}
	if views[0].LatestMessage == nil {
		t.Fatal("latest message not resolved")
	}
	if views[0].LatestMessage.Sender.ID != "b" {
		t.Errorf("latest message sender not resolved: %+v", views[0].LatestMessage.Sender)
	}
}

func TestPostMessageRequiresParticipant(t *testing.T) {
	repo := newRepo("a", "b", "c", "x")
	group := mkGroup(t, repo, "a", "b", "c")
	ctx := context.Background()

	_, err := usecase.NewPostMessageUseCase(repo).Execute(ctx, usecase.PostMessageInput{
		ConversationID: group.ID, SenderID: "x", Body: strptr("hi"),
	})
	if !errors.Is(err, usecase.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	_, err = usecase.NewPostMessageUseCase(repo).Execute(ctx, usecase.PostMessageInput{
		ConversationID: group.ID, SenderID: "a",
	})
	if !errors.Is(err, usecase.ErrInvalidRequest) {
		t.Errorf("empty message: expected ErrInvalidRequest, got %v", err)
	}
}

func TestGetMessagesRequiresParticipant(t *testing.T) {
	repo := newRepo("a", "b", "c", "x")
	group := mkGroup(t, repo, "a", "b", "c")
	ctx := context.Background()

	for _, body := range []string{"one", "two", "three"} {
		if _, err := usecase.NewPostMessageUseCase(repo).Execute(ctx, usecase.PostMessageInput{
			ConversationID: group.ID, SenderID: "a", Body: strptr(body),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	msgs, err := usecase.NewGetMessagesUseCase(repo).Execute(ctx, usecase.GetMessagesInput{
		ActorID: "b", ConversationID: group.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Body == nil || *msgs[0].Body != "three" {
		t.Errorf("expected newest first, got %+v", msgs[0].Body)
	}

	if _, err := usecase.NewGetMessagesUseCase(repo).Execute(ctx, usecase.GetMessagesInput{
		ActorID: "x", ConversationID: group.ID,
	}); !errors.Is(err, usecase.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
