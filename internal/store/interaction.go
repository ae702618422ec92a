package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const tableInteractions = "student_interactions"

type interactionRepo struct {
	s *Store
}

type interactionRow struct {
	UserID     string         `db:"user_id"`
	Subject    string         `db:"subject"`
	Topic      string         `db:"topic"`
	Subtopic   sql.NullString `db:"subtopic"`
	Type       string         `db:"interaction_type"`
	Content    string         `db:"content"`
	AIResponse sql.NullString `db:"ai_response"`
	Context    string         `db:"context"`
	CreatedAt  time.Time      `db:"created_at"`
}

var interactionColumns = []string{
	"user_id", "subject", "topic", "subtopic", "interaction_type",
	"content", "ai_response", "context", "created_at",
}

func (r *interactionRepo) Append(ctx context.Context, in Interaction) error {
	switch in.Type {
	case InteractionQuestion, InteractionAnswer, InteractionDoubt, InteractionFeedback:
	default:
		return fmt.Errorf("invalid interaction type %q", in.Type)
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	if in.Context == nil {
		in.Context = map[string]any{}
	}
	ctxJSON, err := marshalJSON(in.Context)
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}

	query, args := r.s.builder().
		Insert(tableInteractions).
		Columns(interactionColumns...).
		Values(in.UserID, in.Subject, in.Topic, nullString(in.Subtopic), in.Type,
			in.Content, nullString(in.AIResponse), ctxJSON, in.CreatedAt.UTC()).
		Query()

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}
	return nil
}

func (r *interactionRepo) List(ctx context.Context, userID, subject, topic string) ([]Interaction, error) {
	query, args := r.s.builder().
		Select(interactionColumns...).
		From(entsql.Table(tableInteractions)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("subject", subject),
			entsql.EQ("topic", topic),
		)).
		OrderBy("created_at").
		Query()

	var rows []interactionRow
	if err := r.s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	out := make([]Interaction, 0, len(rows))
	for _, row := range rows {
		in := Interaction{
			UserID:     row.UserID,
			Subject:    row.Subject,
			Topic:      row.Topic,
			Subtopic:   row.Subtopic.String,
			Type:       row.Type,
			Content:    row.Content,
			AIResponse: row.AIResponse.String,
			CreatedAt:  row.CreatedAt,
		}
		if err := unmarshalJSON(row.Context, &in.Context); err != nil {
			return nil, fmt.Errorf("decode context: %w", err)
		}
		out = append(out, in)
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
