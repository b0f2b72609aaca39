package worker

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// TrialExpiryWorker fecha trials vencidos: end_date no passado e lead
// ainda em New/Contacted. Transições explícitas do painel (Converted,
// Closed) nunca são tocadas.
type TrialExpiryWorker struct {
	db           *sql.DB
	tickInterval time.Duration
	log          *zap.Logger
}

func NewTrialExpiryWorker(db *sql.DB, log *zap.Logger) *TrialExpiryWorker {
	return &TrialExpiryWorker{
		db:           db,
		tickInterval: 1 * time.Hour,
		log:          log,
	}
}

func (w *TrialExpiryWorker) Start(ctx context.Context) {
	w.log.Info("trial expiry worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireTrials(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("trial expiry worker stopped")
			return
		case <-ticker.C:
			w.expireTrials(ctx)
		}
	}
}

func (w *TrialExpiryWorker) expireTrials(ctx context.Context) {
	query := `
		UPDATE free_trials
		SET status = 'Closed', closed_reason = 'Trial expired'
		WHERE end_date IS NOT NULL
		  AND end_date < NOW()
		  AND status IN ('New', 'Contacted')
		RETURNING id, name, end_date
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		w.log.Error("failed to sweep expired trials", zap.Error(err))
		return
	}
	defer rows.Close()

	expired := 0
	for rows.Next() {
		var id, name string
		var endDate time.Time

		if err := rows.Scan(&id, &name, &endDate); err != nil {
			w.log.Warn("failed to scan expired trial", zap.Error(err))
			continue
		}

		w.log.Info("free trial expired",
			zap.String("lead_id", id),
			zap.String("name", name),
			zap.Time("end_date", endDate),
		)
		expired++
	}

	if expired > 0 {
		w.log.Info("trial expiry sweep done", zap.Int("closed", expired))
	}
}
