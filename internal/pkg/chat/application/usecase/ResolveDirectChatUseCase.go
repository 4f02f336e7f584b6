package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	cacheport "go-confab/internal/infrastructure/cache/port"
	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

// directKeyCacheTTL bounds how long a pair-to-conversation mapping is kept in
// the cache. The mapping is write-once, so the TTL only limits memory, not
// correctness.
const directKeyCacheTTL = 24 * time.Hour

// ResolveDirectChatInput names the two sides of a direct conversation.
type ResolveDirectChatInput struct {
	ActorID  string
	TargetID string
}

// ResolveDirectChatUseCase finds the direct conversation between two users or
// creates it. The find-or-create is a single conditional write keyed on the
// canonical unordered pair, so two concurrent resolves for the same pair
// yield the same conversation.
//
// Cache is optional; when set, resolved pair keys are remembered so repeat
// resolves skip the store write path.
type ResolveDirectChatUseCase struct {
	Repo  repository.ChatRepository
	Cache cacheport.Cache
}

func NewResolveDirectChatUseCase(repo repository.ChatRepository, cache cacheport.Cache) *ResolveDirectChatUseCase {
	return &ResolveDirectChatUseCase{Repo: repo, Cache: cache}
}

func (uc *ResolveDirectChatUseCase) Execute(ctx context.Context, in ResolveDirectChatInput) (*chat.ConversationView, error) {
	if in.ActorID == "" || in.TargetID == "" {
		return nil, fmt.Errorf("%w: target user id is required", ErrInvalidRequest)
	}
	if in.ActorID == in.TargetID {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, chat.ErrSelfConversation)
	}

	key := chat.DirectKey(in.ActorID, in.TargetID)

	if uc.Cache != nil {
		if id, err := uc.Cache.Get(ctx, "direct:"+key); err == nil && id != "" {
			view, err := uc.Repo.GetConversationView(ctx, id)
			if err == nil {
				return view, nil
			}
			// stale or unreadable entry: fall through to the store
		}
	}

	id, _, err := uc.Repo.ResolveDirect(ctx, key, in.ActorID, in.TargetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: target user does not exist", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		_ = uc.Cache.Set(ctx, "direct:"+key, id, directKeyCacheTTL)
	}

	view, err := uc.Repo.GetConversationView(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return view, nil
}
