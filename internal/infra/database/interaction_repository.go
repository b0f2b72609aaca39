package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/droppurity/leadsboard/internal/entity"
)

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *entity.Interaction) error {
	query := `
		INSERT INTO interactions (id, lead_id, lead_type, lead_name, type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		interaction.ID,
		interaction.LeadID,
		interaction.LeadType,
		interaction.LeadName,
		interaction.Type,
		interaction.Notes,
		interaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}

	return nil
}

// FindByLeadIDs é a query única do agregador: todas as interações do
// conjunto de leads, mais recente primeiro.
func (r *InteractionRepository) FindByLeadIDs(ctx context.Context, leadIDs []string) ([]entity.Interaction, error) {
	query := `
		SELECT id, lead_id, lead_type, COALESCE(lead_name, ''), type, notes, created_at
		FROM interactions
		WHERE lead_id = ANY($1)
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(leadIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	return scanInteractions(rows)
}

// FindAllWithLeadNames alimenta o feed global: o nome exibido é o nome
// atual do lead (join), e interações de leads removidos caem fora.
func (r *InteractionRepository) FindAllWithLeadNames(ctx context.Context) ([]entity.Interaction, error) {
	query := `
		SELECT i.id, i.lead_id, i.lead_type, l.name, i.type, i.notes, i.created_at
		FROM interactions i
		JOIN (
			SELECT id, name FROM contacts
			UNION ALL SELECT id, name FROM free_trials
			UNION ALL SELECT id, name FROM referrals
			UNION ALL SELECT id, name FROM subscriptions
		) l ON l.id = i.lead_id
		ORDER BY i.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query interaction feed: %w", err)
	}
	defer rows.Close()

	return scanInteractions(rows)
}

func (r *InteractionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count interactions: %w", err)
	}
	return count, nil
}

func scanInteractions(rows *sql.Rows) ([]entity.Interaction, error) {
	var interactions []entity.Interaction
	for rows.Next() {
		var i entity.Interaction
		err := rows.Scan(&i.ID, &i.LeadID, &i.LeadType, &i.LeadName, &i.Type, &i.Notes, &i.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}
