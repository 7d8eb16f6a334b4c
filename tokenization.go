package payu

import (
	"context"
	"net/http"
	"strings"

	"github.com/hugochinchilla79/payu_sdk/eligibility"
	"github.com/hugochinchilla79/payu_sdk/models"
)

// tokenDateLayout is the date format of GET_TOKENS filters.
const tokenDateLayout = "2006-01-02T15:04:05"

// TokenizationService groups the card tokenization commands.
type TokenizationService struct {
	client *Client
}

// CreateToken stores a card and returns its token.
func (s *TokenizationService) CreateToken(ctx context.Context, req models.CreateTokenRequest) (models.APIResponse[models.TokenResponse], error) {
	var out models.APIResponse[models.TokenResponse]
	c := s.client

	franchise := req.PaymentMethod
	if franchise == "" {
		franchise = DetectFranchise(req.Number)
	}
	if !franchise.IsValid() {
		return out, &eligibility.InvalidValueError{Field: "paymentMethod", Value: string(req.PaymentMethod)}
	}
	if err := requireFields(
		"payerId", req.PayerID,
		"name", req.Name,
		"number", req.Number,
		"expirationDate", req.ExpirationDate,
	); err != nil {
		return out, err
	}

	payload := createTokenRequest{
		commandRequest: c.command(models.CommandCreateToken),
		CreditCardToken: creditCardTokenData{
			PayerID:              req.PayerID,
			Name:                 req.Name,
			IdentificationNumber: req.IdentificationNumber,
			PaymentMethod:        franchise,
			Number:               req.Number,
			ExpirationDate:       req.ExpirationDate,
		},
	}
	return call[models.TokenResponse](ctx, c, http.MethodPost, c.cfg.PaymentsURL(), nil, payload)
}

// CreateTokens would upload a batch file of cards. PayU only accepts it as
// a multipart CSV upload, which this client does not support.
func (s *TokenizationService) CreateTokens(ctx context.Context) error {
	return notImplemented("tokenization: create tokens in batch")
}

// Pay charges a stored card token.
//
// The franchise is checked against the TOKENIZATION eligibility policy, and
// the security code is mandatory only where the CVV policy says so. When no
// code is sent the request asks PayU to process without it.
func (s *TokenizationService) Pay(ctx context.Context, req models.TokenPaymentRequest) (models.APIResponse[models.TransactionResponse], error) {
	var out models.APIResponse[models.TransactionResponse]
	c := s.client

	txType, err := chargeType(req.Type)
	if err != nil {
		return out, err
	}
	if strings.TrimSpace(req.CreditCardTokenID) == "" {
		return out, &eligibility.InvalidValueError{Field: "creditCardTokenId", Value: req.CreditCardTokenID}
	}

	validated, err := eligibility.ValidateRequest(eligibility.Request{
		Country:         req.Country,
		Franchise:       req.PaymentMethod,
		TransactionType: txType,
		Flow:            models.FlowTokenization,
		SecurityCode:    req.SecurityCode,
	})
	if err != nil {
		c.rejected(err, req.ReferenceCode)
		return out, err
	}

	o, err := c.chargeOrder(req.ReferenceCode, req.Description, req.Value, req.Tax, req.TaxReturnBase,
		req.Currency, validated.Country, req.Language, req.NotifyURL)
	if err != nil {
		return out, err
	}
	o.Buyer = req.Buyer
	o.ShippingAddress = req.ShippingAddress

	card := tokenCard{SecurityCode: validated.SecurityCode}
	if card.SecurityCode == "" {
		card.ProcessWithoutCvv2 = true
	}

	payload := submitTransactionRequest{
		commandRequest: c.command(models.CommandSubmitTransaction),
		Transaction: transaction{
			Order:             o,
			Payer:             req.Payer,
			CreditCardTokenID: req.CreditCardTokenID,
			CreditCard:        card,
			ExtraParameters:   req.ExtraParameters,
			Type:              validated.TransactionType,
			PaymentMethod:     validated.Franchise,
			PaymentCountry:    validated.Country,
			DeviceSessionID:   req.Device.SessionID,
			IPAddress:         req.Device.IPAddress,
			Cookie:            req.Device.Cookie,
			UserAgent:         req.Device.UserAgent,
		},
	}
	return call[models.TransactionResponse](ctx, c, http.MethodPost, c.cfg.PaymentsURL(), nil, payload)
}

// PayBatch would charge a batch file of tokens; like CreateTokens it needs a
// multipart upload.
func (s *TokenizationService) PayBatch(ctx context.Context) error {
	return notImplemented("tokenization: pay tokens in batch")
}

// GetTokens looks up stored cards by token id or by creation date range.
func (s *TokenizationService) GetTokens(ctx context.Context, q models.TokenQuery) (models.APIResponse[models.TokensResponse], error) {
	var out models.APIResponse[models.TokensResponse]
	c := s.client

	info := creditCardTokenInformation{
		PayerID:           q.PayerID,
		CreditCardTokenID: q.CreditCardTokenID,
	}
	if info.CreditCardTokenID == "" {
		if q.StartDate.IsZero() || q.EndDate.IsZero() {
			return out, &eligibility.InvalidValueError{Field: "creditCardTokenId", Value: ""}
		}
		if q.EndDate.Before(q.StartDate) {
			return out, &eligibility.InvalidValueError{Field: "endDate", Value: q.EndDate.Format(tokenDateLayout)}
		}
		info.StartDate = q.StartDate.Format(tokenDateLayout)
		info.EndDate = q.EndDate.Format(tokenDateLayout)
	}

	payload := getTokensRequest{
		commandRequest:             c.command(models.CommandGetTokens),
		CreditCardTokenInformation: info,
	}
	return call[models.TokensResponse](ctx, c, http.MethodPost, c.cfg.PaymentsURL(), nil, payload)
}

// RemoveToken deletes a stored card.
func (s *TokenizationService) RemoveToken(ctx context.Context, req models.RemoveTokenRequest) (models.APIResponse[models.TokenResponse], error) {
	var out models.APIResponse[models.TokenResponse]
	c := s.client

	if err := requireFields("payerId", req.PayerID, "creditCardTokenId", req.CreditCardTokenID); err != nil {
		return out, err
	}

	payload := removeTokenRequest{
		commandRequest: c.command(models.CommandRemoveToken),
		RemoveCreditCardToken: removeCreditCardToken{
			PayerID:           req.PayerID,
			CreditCardTokenID: req.CreditCardTokenID,
		},
	}
	return call[models.TokenResponse](ctx, c, http.MethodPost, c.cfg.PaymentsURL(), nil, payload)
}
