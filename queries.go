package payu

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hugochinchilla79/payu_sdk/eligibility"
	"github.com/hugochinchilla79/payu_sdk/models"
)

// QueriesService groups the reports API commands.
type QueriesService struct {
	client *Client
}

// Ping checks that the reports API is reachable.
func (s *QueriesService) Ping(ctx context.Context) (models.APIResponse[models.PingResponse], error) {
	c := s.client
	return call[models.PingResponse](ctx, c, http.MethodPost, c.cfg.ReportsURL(), nil, c.command(models.CommandPing))
}

// OrderByID returns an order and its transactions.
func (s *QueriesService) OrderByID(ctx context.Context, orderID int64) (models.APIResponse[models.QueryResponse], error) {
	if orderID <= 0 {
		return models.APIResponse[models.QueryResponse]{}, &eligibility.InvalidValueError{Field: "orderId", Value: fmt.Sprint(orderID)}
	}
	return s.query(ctx, models.CommandOrderDetail, map[string]any{"orderId": orderID})
}

// OrderByReference returns the orders created with a merchant reference code.
func (s *QueriesService) OrderByReference(ctx context.Context, referenceCode string) (models.APIResponse[models.QueryResponse], error) {
	if err := requireFields("referenceCode", referenceCode); err != nil {
		return models.APIResponse[models.QueryResponse]{}, err
	}
	return s.query(ctx, models.CommandOrderDetailByReferenceCode, map[string]any{"referenceCode": referenceCode})
}

// TransactionResponse returns the processor response of a transaction.
func (s *QueriesService) TransactionResponse(ctx context.Context, transactionID string) (models.APIResponse[models.QueryResponse], error) {
	if err := requireFields("transactionId", transactionID); err != nil {
		return models.APIResponse[models.QueryResponse]{}, err
	}
	return s.query(ctx, models.CommandTransactionResponseDetail, map[string]any{"transactionId": transactionID})
}

func (s *QueriesService) query(ctx context.Context, cmd models.Command, details map[string]any) (models.APIResponse[models.QueryResponse], error) {
	c := s.client
	payload := queryRequest{
		commandRequest: c.command(cmd),
		Details:        details,
	}
	return call[models.QueryResponse](ctx, c, http.MethodPost, c.cfg.ReportsURL(), nil, payload)
}
