package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

// CreateGroupChatInput carries the requested member list and display name.
// The acting user becomes the group admin and is always a member.
type CreateGroupChatInput struct {
	ActorID   string
	MemberIDs []string
	Name      string
}

// CreateGroupChatUseCase creates a group conversation from a requested member
// list. A group needs at least two distinct members besides the creator.
type CreateGroupChatUseCase struct {
	Repo repository.ChatRepository
}

func NewCreateGroupChatUseCase(repo repository.ChatRepository) *CreateGroupChatUseCase {
	return &CreateGroupChatUseCase{Repo: repo}
}

func (uc *CreateGroupChatUseCase) Execute(ctx context.Context, in CreateGroupChatInput) (*chat.ConversationView, error) {
	if in.ActorID == "" {
		return nil, fmt.Errorf("%w: acting user id is required", ErrInvalidRequest)
	}

	name, err := chat.ValidateGroupName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	members, err := chat.GroupMembers(in.ActorID, in.MemberIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	id, err := uc.Repo.CreateGroup(ctx, name, in.ActorID, members)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: one of the members does not exist", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	view, err := uc.Repo.GetConversationView(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return view, nil
}
