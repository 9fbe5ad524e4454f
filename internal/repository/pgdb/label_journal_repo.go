package pgdb

import (
	"context"
	"fmt"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/hsm-textlab/workbench/internal/repository/pgdb/converter"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// LabelJournalRepo реализует журнал отправленных разметок поверх PostgreSQL.
type LabelJournalRepo struct {
	pool *pgxpool.Pool
	conv converter.LabelSubmissionConverter
}

func NewLabelJournalRepo(pool *pgxpool.Pool, conv converter.LabelSubmissionConverter) *LabelJournalRepo {
	return &LabelJournalRepo{
		pool: pool,
		conv: conv,
	}
}

// Record сохраняет заголовок отправки и все ее метки в одной транзакции.
func (l *LabelJournalRepo) Record(ctx context.Context, submission *usecase.LabelSubmission) (err error) {
	const op = "LabelJournalRepo.Record"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, l.pool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()

	pgxTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		return e.Wrap(op, e.ErrTransactionNotFound)
	}
	ctx = tr.WithTx(ctx, pgxTx)

	if err = l.insertSubmission(ctx, l.conv.ToModel(submission)); err != nil {
		return e.Wrap(op, err)
	}

	if err = l.insertEntries(ctx, l.conv.ToEntryModels(submission)); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (l *LabelJournalRepo) insertSubmission(ctx context.Context, model *converter.LabelSubmissionModel) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO label_submissions (id, clusterer, cleared, total, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`

	if _, err := tx.Exec(ctx, query,
		model.ID,
		model.Clusterer,
		model.Cleared,
		model.Total,
		model.CreatedAt,
	); err != nil {
		return fmt.Errorf("%s: failed to insert submission: %w", whereami.WhereAmI(), err)
	}

	return nil
}

// insertEntries копирует метки через COPY: отправка может содержать тысячи документов.
func (l *LabelJournalRepo) insertEntries(ctx context.Context, entries []converter.LabelEntryModel) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	rows := make([][]any, len(entries))
	for i, entry := range entries {
		rows[i] = []any{entry.SubmissionID, entry.Document, entry.Label}
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"label_entries"},
		[]string{"submission_id", "document", "label"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to copy entries: %w", whereami.WhereAmI(), err)
	}
	if copied != int64(len(entries)) {
		return fmt.Errorf("%s: copied %d of %d entries", whereami.WhereAmI(), copied, len(entries))
	}

	return nil
}

// History возвращает последние limit отправок кластеризатора, новые первыми.
func (l *LabelJournalRepo) History(ctx context.Context, clusterer string, limit int) ([]usecase.LabelSubmission, error) {
	query := `
		SELECT id::text, clusterer, cleared, total, created_at
		FROM label_submissions
		WHERE clusterer = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := l.pool.Query(ctx, query, clusterer, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query submissions: %w", whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var (
		models []converter.LabelSubmissionModel
		ids    []string
	)
	for rows.Next() {
		var model converter.LabelSubmissionModel
		if err := rows.Scan(
			&model.ID,
			&model.Clusterer,
			&model.Cleared,
			&model.Total,
			&model.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: failed to scan submission: %w", whereami.WhereAmI(), err)
		}

		models = append(models, model)
		ids = append(ids, model.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iterator error: %w", whereami.WhereAmI(), err)
	}

	entries, err := l.entriesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]usecase.LabelSubmission, 0, len(models))
	for i := range models {
		result = append(result, *l.conv.ToEntity(&models[i], entries[models[i].ID]))
	}

	return result, nil
}

func (l *LabelJournalRepo) entriesFor(ctx context.Context, ids []string) (map[string][]converter.LabelEntryModel, error) {
	result := make(map[string][]converter.LabelEntryModel, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT submission_id::text, document, label
		FROM label_entries
		WHERE submission_id = ANY($1::uuid[])
	`

	rows, err := l.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query entries: %w", whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry converter.LabelEntryModel
		if err := rows.Scan(&entry.SubmissionID, &entry.Document, &entry.Label); err != nil {
			return nil, fmt.Errorf("%s: failed to scan entry: %w", whereami.WhereAmI(), err)
		}
		result[entry.SubmissionID] = append(result[entry.SubmissionID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iterator error: %w", whereami.WhereAmI(), err)
	}

	return result, nil
}
