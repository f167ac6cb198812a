package store

import (
	"context"
	"fmt"

	"sosintake/internal/utils"
	"sosintake/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
)

const submissionTableName = "sos.sos_requests"

var submissionColumns = utils.StructTagValues(types.Submission{})

type SubmissionRepository struct {
	db DBTX
}

func NewSubmissionRepository(db DBTX) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// CreateSubmission inserts the submission as a single row. An ID is assigned
// when the caller has not set one. An insert that hits an existing ID
// completes without inserting and is reported as types.ErrSubmissionNotInserted.
func (r *SubmissionRepository) CreateSubmission(ctx context.Context, submission *types.Submission) error {

	if submission.ID == "" {
		submission.ID = utils.NanoID()
	}

	query, args, err := psql().
		Insert(submissionTableName).
		SetMap(utils.StructToMap(submission)).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert sos request query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert sos request %s: %w", submission.ID, err)
	}

	if tag.RowsAffected() != 1 {
		return types.ErrSubmissionNotInserted
	}

	return nil
}

func (r *SubmissionRepository) LatestSubmissions(ctx context.Context, limit uint64) ([]*types.Submission, error) {
	query, args, err := psql().
		Select(submissionColumns...).
		From(submissionTableName).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest sos requests query: %w", err)
	}

	out := make([]*types.Submission, 0)
	if err := pgxscan.Select(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select latest sos requests: %w", err)
	}

	return out, nil
}

func (r *SubmissionRepository) Ping(ctx context.Context) error {
	return utils.ErrorWrapOrNil(r.db.Ping(ctx), "failed to ping database")
}
