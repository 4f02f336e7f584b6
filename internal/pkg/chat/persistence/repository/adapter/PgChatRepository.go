package adapter

import (
	"context"
	"errors"
	"time"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// foreign key violation
const fkViolationCode = "23503"

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) ResolveDirect(ctx context.Context, directKey, userA, userB string) (string, bool, error) {
	if r == nil || r.pool == nil {
		return "", false, errors.New("PgChatRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", false, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	id := uuid.NewString()
	created := false

	// The UNIQUE index on direct_key makes this a race-free find-or-create:
	// the losing writer falls through to the SELECT below.
	err = tx.QueryRow(ctx, `
		INSERT INTO chat.conversation (id, kind, name, direct_key, created_at, updated_at)
		VALUES ($1::uuid, 'direct', '', $2, $3, $3)
		ON CONFLICT (direct_key) DO NOTHING
		RETURNING id::text
	`, id, directKey, now).Scan(&id)
	switch {
	case err == nil:
		created = true
	case errors.Is(err, pgx.ErrNoRows):
		if err := tx.QueryRow(ctx,
			"SELECT id::text FROM chat.conversation WHERE direct_key = $1", directKey,
		).Scan(&id); err != nil {
			return "", false, mapPgError(err)
		}
	default:
		return "", false, mapPgError(err)
	}

	if created {
		for _, uid := range []string{userA, userB} {
			if _, err := tx.Exec(ctx, `
				INSERT INTO chat.participant (conversation_id, user_id, joined_at)
				VALUES ($1::uuid, $2::uuid, $3)
				ON CONFLICT (conversation_id, user_id) DO NOTHING
			`, id, uid, now); err != nil {
				return "", false, mapPgError(err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", false, err
	}
	return id, created, nil
}

func (r *PgChatRepository) CreateGroup(ctx context.Context, name, adminID string, memberIDs []string) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	id := uuid.NewString()

	if _, err := tx.Exec(ctx, `
		INSERT INTO chat.conversation (id, kind, name, admin_id, created_at, updated_at)
		VALUES ($1::uuid, 'group', $2, $3::uuid, $4, $4)
	`, id, name, adminID, now); err != nil {
		return "", mapPgError(err)
	}

	// one insert per member keeps the identity column reflecting request order
	for _, uid := range memberIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO chat.participant (conversation_id, user_id, joined_at)
			VALUES ($1::uuid, $2::uuid, $3)
			ON CONFLICT (conversation_id, user_id) DO NOTHING
		`, id, uid, now); err != nil {
			return "", mapPgError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PgChatRepository) GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var c chat.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, kind, name, admin_id::text, direct_key, latest_message_id::text, created_at, updated_at
		FROM chat.conversation
		WHERE id = $1::uuid
	`, conversationID).Scan(&c.ID, &c.Kind, &c.Name, &c.AdminID, &c.DirectKey, &c.LatestMessageID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}

func (r *PgChatRepository) GetConversationView(ctx context.Context, conversationID string) (*chat.ConversationView, error) {
	c, err := r.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return r.resolveView(ctx, c)
}

func (r *PgChatRepository) ListForUser(ctx context.Context, userID string) ([]chat.ConversationView, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.kind, c.name, c.admin_id::text, c.direct_key, c.latest_message_id::text, c.created_at, c.updated_at
		FROM chat.conversation c
		JOIN chat.participant me ON me.conversation_id = c.id
		WHERE me.user_id = $1::uuid
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []chat.Conversation
	for rows.Next() {
		var c chat.Conversation
		if err := rows.Scan(&c.ID, &c.Kind, &c.Name, &c.AdminID, &c.DirectKey, &c.LatestMessageID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	views := make([]chat.ConversationView, 0, len(convs))
	for i := range convs {
		v, err := r.resolveView(ctx, &convs[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (r *PgChatRepository) Rename(ctx context.Context, conversationID, name string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.conversation
		SET name = $2, updated_at = $3
		WHERE id = $1::uuid
	`, conversationID, name, time.Now().UTC())
	if err != nil {
		return mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PgChatRepository) AddParticipant(ctx context.Context, conversationID, userID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := r.bumpUpdatedAt(ctx, tx, conversationID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO chat.participant (conversation_id, user_id, joined_at)
		VALUES ($1::uuid, $2::uuid, $3)
		ON CONFLICT (conversation_id, user_id) DO NOTHING
	`, conversationID, userID, time.Now().UTC()); err != nil {
		return mapPgError(err)
	}
	return tx.Commit(ctx)
}

func (r *PgChatRepository) RemoveParticipant(ctx context.Context, conversationID, userID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := r.bumpUpdatedAt(ctx, tx, conversationID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM chat.participant
		WHERE conversation_id = $1::uuid AND user_id = $2::uuid
	`, conversationID, userID); err != nil {
		return mapPgError(err)
	}
	return tx.Commit(ctx)
}

func (r *PgChatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM chat.participant
			WHERE conversation_id = $1::uuid AND user_id = $2::uuid
		)
	`, conversationID, userID).Scan(&exists)
	if err != nil {
		return false, mapPgError(err)
	}
	return exists, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	id := uuid.NewString()
	if _, err := tx.Exec(ctx, `
		INSERT INTO chat.message (id, conversation_id, sender_id, body, msg_type, attachment_url, created_at)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7)
	`, id, m.ConversationID, m.SenderID, m.Body, m.MsgType, m.AttachmentURL, m.CreatedAt); err != nil {
		return "", mapPgError(err)
	}

	// the latest-message pointer and updated_at move together so the chat
	// list stays ordered by recent activity
	ct, err := tx.Exec(ctx, `
		UPDATE chat.conversation
		SET latest_message_id = $2::uuid, updated_at = $3
		WHERE id = $1::uuid
	`, m.ConversationID, id, m.CreatedAt)
	if err != nil {
		return "", mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return "", repository.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PgChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit, offset int) ([]chat.MessageView, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.id::text, m.conversation_id::text, m.body, m.msg_type, m.attachment_url, m.created_at,
		       s.id::text, s.name, s.email, s.pic
		FROM chat.message m
		JOIN app_user s ON s.id = m.sender_id
		WHERE m.conversation_id = $1::uuid
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.MessageView
	for rows.Next() {
		var v chat.MessageView
		if err := rows.Scan(&v.ID, &v.ConversationID, &v.Body, &v.MsgType, &v.AttachmentURL, &v.CreatedAt,
			&v.Sender.ID, &v.Sender.Name, &v.Sender.Email, &v.Sender.Pic); err != nil {
			return nil, err
		}
		msgs = append(msgs, v)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

// resolveView is the query-time join that denormalizes participants, admin
// and the latest-message sender onto the conversation record.
func (r *PgChatRepository) resolveView(ctx context.Context, c *chat.Conversation) (*chat.ConversationView, error) {
	v := &chat.ConversationView{
		ID:        c.ID,
		Kind:      c.Kind,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	rows, err := r.pool.Query(ctx, `
		SELECT u.id::text, u.name, u.email, u.pic
		FROM chat.participant p
		JOIN app_user u ON u.id = p.user_id
		WHERE p.conversation_id = $1::uuid
		ORDER BY p.ord
	`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var u chat.UserView
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Pic); err != nil {
			return nil, err
		}
		v.Participants = append(v.Participants, u)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	if c.AdminID != nil {
		for i := range v.Participants {
			if v.Participants[i].ID == *c.AdminID {
				admin := v.Participants[i]
				v.Admin = &admin
				break
			}
		}
		if v.Admin == nil {
			// admin removed from the group but still the owner of record
			var u chat.UserView
			err := r.pool.QueryRow(ctx,
				"SELECT id::text, name, email, pic FROM app_user WHERE id = $1::uuid", *c.AdminID,
			).Scan(&u.ID, &u.Name, &u.Email, &u.Pic)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
			if err == nil {
				v.Admin = &u
			}
		}
	}

	if c.LatestMessageID != nil {
		var m chat.MessageView
		err := r.pool.QueryRow(ctx, `
			SELECT m.id::text, m.conversation_id::text, m.body, m.msg_type, m.attachment_url, m.created_at,
			       s.id::text, s.name, s.email, s.pic
			FROM chat.message m
			JOIN app_user s ON s.id = m.sender_id
			WHERE m.id = $1::uuid
		`, *c.LatestMessageID).Scan(&m.ID, &m.ConversationID, &m.Body, &m.MsgType, &m.AttachmentURL, &m.CreatedAt,
			&m.Sender.ID, &m.Sender.Name, &m.Sender.Email, &m.Sender.Pic)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			v.LatestMessage = &m
		}
	}

	return v, nil
}

func (r *PgChatRepository) bumpUpdatedAt(ctx context.Context, tx pgx.Tx, conversationID string) error {
	ct, err := tx.Exec(ctx,
		"UPDATE chat.conversation SET updated_at = $2 WHERE id = $1::uuid",
		conversationID, time.Now().UTC())
	if err != nil {
		return mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// mapPgError folds driver-level miss signals into the port sentinel.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
		return repository.ErrNotFound
	}
	return err
}
