package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/config"
	"github.com/venky2135/pg-management-system/internal/model"
)

// StudentClient talks to /api/students.
type StudentClient struct {
	*Resource[model.Student]
}

// NewStudentClient creates a StudentClient against cfg.APIBaseURL.
// A nil httpClient uses http.DefaultClient.
func NewStudentClient(cfg *config.Config, httpClient Doer, log zerolog.Logger) *StudentClient {
	t := newTransport(cfg.APIBaseURL, httpClient, log.With().Str("component", "student_client").Logger())
	return &StudentClient{
		Resource: &Resource[model.Student]{
			t:          t,
			collection: config.Endpoint.Students(),
			item:       config.Endpoint.Student,
		},
	}
}

// SearchByEmail asks the server for students with exactly this email.
func (c *StudentClient) SearchByEmail(ctx context.Context, email string) ([]model.Student, error) {
	return c.search(ctx, url.Values{"email": {email}})
}

// SearchByRoom asks the server for students assigned to roomNo.
func (c *StudentClient) SearchByRoom(ctx context.Context, roomNo string) ([]model.Student, error) {
	return c.search(ctx, url.Values{"roomNo": {roomNo}})
}

func (c *StudentClient) search(ctx context.Context, query url.Values) ([]model.Student, error) {
	var out []model.Student
	if err := c.t.do(ctx, http.MethodGet, config.Endpoint.StudentSearch(), query, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Student{}
	}
	return out, nil
}
