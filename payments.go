package payu

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hugochinchilla79/payu_sdk/eligibility"
	"github.com/hugochinchilla79/payu_sdk/models"
)

// PaymentsService groups the payments API commands.
type PaymentsService struct {
	client *Client
}

// NewReferenceCode returns a random order reference code.
func NewReferenceCode() string {
	return uuid.NewString()
}

// Ping checks that the payments API is reachable with the configured credentials.
func (s *PaymentsService) Ping(ctx context.Context) (models.APIResponse[models.PingResponse], error) {
	c := s.client
	return call[models.PingResponse](ctx, c, http.MethodPost, c.cfg.PaymentsURL(), nil, c.command(models.CommandPing))
}

// GetPaymentMethods lists the payment methods enabled for the merchant.
func (s *PaymentsService) GetPaymentMethods(ctx context.Context) (models.APIResponse[models.PaymentMethodsResponse], error) {
	c := s.client
	return call[models.PaymentMethodsResponse](ctx, c, http.MethodPost, c.cfg.PaymentsURL(), nil, c.command(models.CommandGetPaymentMethods))
}

// GetBanksList lists the banks available for PSE transfers in country.
func (s *PaymentsService) GetBanksList(ctx context.Context, country models.Country) (models.APIResponse[models.BanksListResponse], error) {
	if !country.IsValid() {
		return models.APIResponse[models.BanksListResponse]{}, &eligibility.InvalidCountryError{Country: country}
	}
	c := s.client
	payload := banksListRequest{
		commandRequest: c.command(models.CommandGetBanksList),
		BankListInformation: bankListInformation{
			PaymentMethod:  "PSE",
			PaymentCountry: country,
		},
	}
	return call[models.BanksListResponse](ctx, c, http.MethodPost, c.cfg.PaymentsURL(), nil, payload)
}

// SubmitTransaction authorizes, or authorizes and captures, a card payment.
//
// The franchise is taken from PaymentMethod or detected from the card
// number and checked against the PAYMENT eligibility policy first; a
// rejected combination returns an eligibility error and nothing is sent.
func (s *PaymentsService) SubmitTransaction(ctx context.Context, req models.PaymentRequest) (models.APIResponse[models.TransactionResponse], error) {
	var out models.APIResponse[models.TransactionResponse]
	c := s.client

	txType, err := chargeType(req.Type)
	if err != nil {
		return out, err
	}
	franchise := req.PaymentMethod
	if franchise == "" {
		franchise = DetectFranchise(req.CreditCard.Number)
		if franchise == "" {
			return out, &eligibility.InvalidValueError{Field: "paymentMethod", Value: ""}
		}
	}

	validated, err := eligibility.ValidateRequest(eligibility.Request{
		Country:         req.Country,
		Franchise:       franchise,
		TransactionType: txType,
		Flow:            models.FlowPayment,
		SecurityCode:    req.CreditCard.SecurityCode,
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

	card := req.CreditCard
	card.SecurityCode = validated.SecurityCode

	payload := submitTransactionRequest{
		commandRequest: c.command(models.CommandSubmitTransaction),
		Transaction: transaction{
			Order:           o,
			Payer:           req.Payer,
			CreditCard:      card,
			ExtraParameters: req.ExtraParameters,
			Type:            validated.TransactionType,
			PaymentMethod:   validated.Franchise,
			PaymentCountry:  validated.Country,
			DeviceSessionID: req.Device.SessionID,
			IPAddress:       req.Device.IPAddress,
			Cookie:          req.Device.Cookie,
			UserAgent:       req.Device.UserAgent,
		},
	}
	return call[models.TransactionResponse](ctx, c, http.MethodPost, c.cfg.PaymentsURL(), nil, payload)
}

// Capture completes a previous AUTHORIZATION. Value and Currency are only
// sent for partial captures.
func (s *PaymentsService) Capture(ctx context.Context, req models.CaptureRequest) (models.APIResponse[models.TransactionResponse], error) {
	var out models.APIResponse[models.TransactionResponse]
	if err := checkReference(req.TransactionReference, false); err != nil {
		return out, err
	}

	tx := transaction{
		Order:               order{ID: req.OrderID},
		Type:                models.TransactionCapture,
		ParentTransactionID: req.ParentTransactionID,
	}
	if v, ok, err := optionalAmount("value", req.Value); err != nil {
		return out, err
	} else if ok {
		if req.Currency == "" {
			return out, &eligibility.InvalidValueError{Field: "currency", Value: ""}
		}
		tx.Order.AdditionalValues = map[string]amount{"TX_VALUE": {Value: v, Currency: req.Currency}}
	}
	return s.followUp(ctx, tx)
}

// Void cancels an authorization that has not been captured.
func (s *PaymentsService) Void(ctx context.Context, ref models.TransactionReference) (models.APIResponse[models.TransactionResponse], error) {
	if err := checkReference(ref, true); err != nil {
		return models.APIResponse[models.TransactionResponse]{}, err
	}
	return s.followUp(ctx, transaction{
		Order:               order{ID: ref.OrderID},
		Type:                models.TransactionVoid,
		ParentTransactionID: ref.ParentTransactionID,
		Reason:              ref.Reason,
	})
}

// Refund requests the refund of a captured transaction.
func (s *PaymentsService) Refund(ctx context.Context, ref models.TransactionReference) (models.APIResponse[models.TransactionResponse], error) {
	if err := checkReference(ref, true); err != nil {
		return models.APIResponse[models.TransactionResponse]{}, err
	}
	return s.followUp(ctx, transaction{
		Order:               order{ID: ref.OrderID},
		Type:                models.TransactionRefund,
		ParentTransactionID: ref.ParentTransactionID,
		Reason:              ref.Reason,
	})
}

func (s *PaymentsService) followUp(ctx context.Context, tx transaction) (models.APIResponse[models.TransactionResponse], error) {
	c := s.client
	payload := submitTransactionRequest{
		commandRequest: c.command(models.CommandSubmitTransaction),
		Transaction:    tx,
	}
	return call[models.TransactionResponse](ctx, c, http.MethodPost, c.cfg.PaymentsURL(), nil, payload)
}

// chargeType defaults an empty type to AUTHORIZATION_AND_CAPTURE and
// rejects types that do not start a new charge.
func chargeType(t models.TransactionType) (models.TransactionType, error) {
	switch t {
	case "":
		return models.TransactionAuthorizationAndCapture, nil
	case models.TransactionAuthorization, models.TransactionAuthorizationAndCapture:
		return t, nil
	}
	return "", &eligibility.InvalidValueError{Field: "transactionType", Value: string(t)}
}

func checkReference(ref models.TransactionReference, needReason bool) error {
	if ref.OrderID <= 0 {
		return &eligibility.InvalidValueError{Field: "orderId", Value: fmt.Sprint(ref.OrderID)}
	}
	if strings.TrimSpace(ref.ParentTransactionID) == "" {
		return &eligibility.InvalidValueError{Field: "parentTransactionId", Value: ref.ParentTransactionID}
	}
	if needReason && strings.TrimSpace(ref.Reason) == "" {
		return &eligibility.InvalidValueError{Field: "reason", Value: ref.Reason}
	}
	return nil
}

// chargeOrder builds the signed order of a new charge.
func (c *Client) chargeOrder(referenceCode, description, value, tax, taxReturnBase string,
	currency models.Currency, country models.Country, lang models.Language, notifyURL string) (order, error) {
	if strings.TrimSpace(referenceCode) == "" {
		return order{}, &eligibility.InvalidValueError{Field: "referenceCode", Value: referenceCode}
	}
	if c.cfg.AccountID == "" {
		return order{}, fmt.Errorf("payu: AccountID is required to submit transactions")
	}
	if currency == "" {
		currency = country.Currency()
	}
	if lang == "" {
		lang = c.cfg.language()
	}

	v, err := parseAmount("value", value)
	if err != nil {
		return order{}, err
	}
	values := map[string]amount{"TX_VALUE": {Value: v, Currency: currency}}
	if t, ok, err := optionalAmount("tax", tax); err != nil {
		return order{}, err
	} else if ok {
		values["TX_TAX"] = amount{Value: t, Currency: currency}
	}
	if b, ok, err := optionalAmount("taxReturnBase", taxReturnBase); err != nil {
		return order{}, err
	} else if ok {
		values["TX_TAX_RETURN_BASE"] = amount{Value: b, Currency: currency}
	}

	return order{
		AccountID:        c.cfg.AccountID,
		ReferenceCode:    referenceCode,
		Description:      description,
		Language:         lang,
		Signature:        c.signer.Sign(c.cfg.APIKey, c.cfg.MerchantID, referenceCode, string(v), string(currency)),
		NotifyURL:        notifyURL,
		AdditionalValues: values,
	}, nil
}

// rejected logs a local validation failure.
func (c *Client) rejected(err error, referenceCode string) {
	event := c.logger.Warn().Err(err).Str("reference_code", referenceCode)

	var unavailable *eligibility.FranchiseUnavailableError
	var cvv *eligibility.CVVRequiredError
	switch {
	case errors.As(err, &unavailable):
		event = event.Str("franchise", string(unavailable.Franchise)).Str("country", string(unavailable.Country))
	case errors.As(err, &cvv):
		event = event.Str("franchise", string(cvv.Franchise)).Str("country", string(cvv.Country))
	}
	event.Msg("transaction rejected before submission")
}
