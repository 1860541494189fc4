package sheet

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/apierror"
	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/venky2135/pg-management-system/internal/validator"
)

// StudentCreator creates students on the server.
type StudentCreator interface {
	Create(ctx context.Context, draft model.Student) (*model.Student, error)
}

// RowError is a row that could not be imported.
type RowError struct {
	Line    int
	Message string
}

// ImportResult summarises an import.
type ImportResult struct {
	Created []model.Student
	Failed  []RowError
}

// Import creates each row's student in order. Rows failing validation are
// reported without a request; server failures are reported with their
// normalized message and do not stop the import. A cancelled context does.
func Import(ctx context.Context, students StudentCreator, rows []Row, log zerolog.Logger) (ImportResult, error) {
	log = log.With().Str("component", "sheet_import").Logger()
	res := ImportResult{Created: []model.Student{}, Failed: []RowError{}}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if fields := validator.Struct(&row.Student); fields != nil {
			res.Failed = append(res.Failed, RowError{
				Line:    row.Line,
				Message: validator.First(fields, "name", "email", "phone", "roomNo"),
			})
			continue
		}

		created, err := students.Create(ctx, row.Student)
		if err != nil {
			log.Warn().Err(err).Int("line", row.Line).Str("email", row.Student.Email).Msg("Import row failed")
			res.Failed = append(res.Failed, RowError{Line: row.Line, Message: apierror.Normalize(err)})
			continue
		}
		res.Created = append(res.Created, *created)
	}

	log.Info().Int("created", len(res.Created)).Int("failed", len(res.Failed)).Msg("Import finished")
	return res, nil
}
