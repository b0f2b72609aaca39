package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/droppurity/leadsboard/internal/entity"
)

// As quatro coleções de lead compartilham o mesmo conjunto de colunas;
// o LeadType escolhe a tabela. Os nomes de tabela vêm do enum, nunca da
// requisição, então a interpolação aqui é segura.
const leadColumns = `id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(address, ''), COALESCE(map_link, ''), COALESCE(purifier_name, ''),
	COALESCE(plan_name, ''), COALESCE(tenure, ''), COALESCE(message, ''),
	COALESCE(referrer_email, ''), start_date, end_date,
	status, COALESCE(closed_reason, ''), created_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, leadType entity.LeadType, lead *entity.Lead) error {
	table, err := leadType.Collection()
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, name, email, phone, address, map_link, purifier_name,
			plan_name, tenure, message, referrer_email, start_date, end_date,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, table)

	_, err = r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		nullString(lead.Phone),
		nullString(lead.Address),
		nullString(lead.MapLink),
		nullString(lead.PurifierName),
		nullString(lead.PlanName),
		nullString(lead.Tenure),
		nullString(lead.Message),
		nullString(lead.ReferrerEmail),
		lead.StartDate,
		lead.EndDate,
		lead.Status,
		lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead into %s: %w", table, err)
	}

	return nil
}

func (r *LeadRepository) FindAll(ctx context.Context, leadType entity.LeadType) ([]entity.Lead, error) {
	table, err := leadType.Collection()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, leadColumns, table)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, leadType entity.LeadType, id string) (*entity.Lead, error) {
	table, err := leadType.Collection()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, leadColumns, table)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("lead not found in %s", table)
		}
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}

	return lead, nil
}

// UpdateStatus aplica a transição explícita. closed_reason só entra no
// SET quando veio motivo; caso contrário o valor anterior permanece.
func (r *LeadRepository) UpdateStatus(ctx context.Context, leadType entity.LeadType, id string, status entity.LeadStatus, closedReason string) error {
	table, err := leadType.Collection()
	if err != nil {
		return err
	}

	var result sql.Result
	if closedReason != "" {
		query := fmt.Sprintf(`UPDATE %s SET status = $1, closed_reason = $2 WHERE id = $3`, table)
		result, err = r.DB.ExecContext(ctx, query, status, closedReason, id)
	} else {
		query := fmt.Sprintf(`UPDATE %s SET status = $1 WHERE id = $2`, table)
		result, err = r.DB.ExecContext(ctx, query, status, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lead not found in %s", table)
	}

	return nil
}

// MarkContacted é a transição implícita das interações: o WHERE garante
// que Converted e Closed nunca regridem.
func (r *LeadRepository) MarkContacted(ctx context.Context, leadType entity.LeadType, id string) error {
	table, err := leadType.Collection()
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET status = $1 WHERE id = $2 AND status = $3`, table)

	_, err = r.DB.ExecContext(ctx, query, entity.StatusContacted, id, entity.StatusNew)
	if err != nil {
		return fmt.Errorf("failed to mark lead contacted: %w", err)
	}

	return nil
}

func (r *LeadRepository) Count(ctx context.Context, leadType entity.LeadType) (int, error) {
	table, err := leadType.Collection()
	if err != nil {
		return 0, err
	}

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
	if err := r.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var startDate, endDate sql.NullTime

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Address,
		&lead.MapLink,
		&lead.PurifierName,
		&lead.PlanName,
		&lead.Tenure,
		&lead.Message,
		&lead.ReferrerEmail,
		&startDate,
		&endDate,
		&lead.Status,
		&lead.ClosedReason,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		lead.StartDate = &startDate.Time
	}
	if endDate.Valid {
		lead.EndDate = &endDate.Time
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
