package client

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/config"
	"github.com/venky2135/pg-management-system/internal/model"
)

// FeeClient talks to /api/fees.
type FeeClient struct {
	*Resource[model.Fee]
}

// NewFeeClient creates a FeeClient against cfg.APIBaseURL.
// A nil httpClient uses http.DefaultClient.
func NewFeeClient(cfg *config.Config, httpClient Doer, log zerolog.Logger) *FeeClient {
	t := newTransport(cfg.APIBaseURL, httpClient, log.With().Str("component", "fee_client").Logger())
	return &FeeClient{
		Resource: &Resource[model.Fee]{
			t:          t,
			collection: config.Endpoint.Fees(),
			item:       config.Endpoint.Fee,
		},
	}
}

// ListByStudent fetches every fee recorded for studentID.
func (c *FeeClient) ListByStudent(ctx context.Context, studentID int64) ([]model.Fee, error) {
	return c.list(ctx, config.Endpoint.FeesByStudent(studentID))
}

// TotalPaidByStudent fetches the server-side sum of the student's paid fees.
func (c *FeeClient) TotalPaidByStudent(ctx context.Context, studentID int64) (*model.TotalPaid, error) {
	var out model.TotalPaid
	if err := c.t.do(ctx, http.MethodGet, config.Endpoint.FeeTotalByStudent(studentID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
