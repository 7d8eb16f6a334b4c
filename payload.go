package payu

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/hugochinchilla79/payu_sdk/eligibility"
	"github.com/hugochinchilla79/payu_sdk/models"
)

// ============================================
// service.cgi request structures (internal marshaling)
// ============================================

type merchant struct {
	APILogin string `json:"apiLogin"`
	APIKey   string `json:"apiKey"`
}

// commandRequest is the header shared by every service.cgi request.
type commandRequest struct {
	Language models.Language `json:"language"`
	Command  models.Command  `json:"command"`
	Merchant merchant        `json:"merchant"`
	Test     bool            `json:"test"`
}

func (r commandRequest) commandName() models.Command { return r.Command }

type amount struct {
	Value    json.Number     `json:"value"`
	Currency models.Currency `json:"currency"`
}

type order struct {
	ID               int64             `json:"id,omitempty"`
	AccountID        string            `json:"accountId,omitempty"`
	ReferenceCode    string            `json:"referenceCode,omitempty"`
	Description      string            `json:"description,omitempty"`
	Language         models.Language   `json:"language,omitempty"`
	Signature        string            `json:"signature,omitempty"`
	NotifyURL        string            `json:"notifyUrl,omitempty"`
	AdditionalValues map[string]amount `json:"additionalValues,omitempty"`
	Buyer            *models.Buyer     `json:"buyer,omitempty"`
	ShippingAddress  *models.Address   `json:"shippingAddress,omitempty"`
}

// tokenCard is the creditCard object of a token payment.
type tokenCard struct {
	SecurityCode       string `json:"securityCode,omitempty"`
	ProcessWithoutCvv2 bool   `json:"processWithoutCvv2,omitempty"`
}

type transaction struct {
	Order               order                  `json:"order"`
	Payer               *models.Payer          `json:"payer,omitempty"`
	CreditCard          any                    `json:"creditCard,omitempty"`
	CreditCardTokenID   string                 `json:"creditCardTokenId,omitempty"`
	ExtraParameters     map[string]any         `json:"extraParameters,omitempty"`
	Type                models.TransactionType `json:"type"`
	PaymentMethod       models.Franchise       `json:"paymentMethod,omitempty"`
	PaymentCountry      models.Country         `json:"paymentCountry,omitempty"`
	ParentTransactionID string                 `json:"parentTransactionId,omitempty"`
	Reason              string                 `json:"reason,omitempty"`
	DeviceSessionID     string                 `json:"deviceSessionId,omitempty"`
	IPAddress           string                 `json:"ipAddress,omitempty"`
	Cookie              string                 `json:"cookie,omitempty"`
	UserAgent           string                 `json:"userAgent,omitempty"`
}

type submitTransactionRequest struct {
	commandRequest
	Transaction transaction `json:"transaction"`
}

type bankListInformation struct {
	PaymentMethod  string         `json:"paymentMethod"`
	PaymentCountry models.Country `json:"paymentCountry"`
}

type banksListRequest struct {
	commandRequest
	BankListInformation bankListInformation `json:"bankListInformation"`
}

type creditCardTokenData struct {
	PayerID              string           `json:"payerId"`
	Name                 string           `json:"name"`
	IdentificationNumber string           `json:"identificationNumber,omitempty"`
	PaymentMethod        models.Franchise `json:"paymentMethod"`
	Number               string           `json:"number"`
	ExpirationDate       string           `json:"expirationDate"`
}

type createTokenRequest struct {
	commandRequest
	CreditCardToken creditCardTokenData `json:"creditCardToken"`
}

type creditCardTokenInformation struct {
	PayerID           string `json:"payerId,omitempty"`
	CreditCardTokenID string `json:"creditCardTokenId,omitempty"`
	StartDate         string `json:"startDate,omitempty"`
	EndDate           string `json:"endDate,omitempty"`
}

type getTokensRequest struct {
	commandRequest
	CreditCardTokenInformation creditCardTokenInformation `json:"creditCardTokenInformation"`
}

type removeCreditCardToken struct {
	PayerID           string `json:"payerId"`
	CreditCardTokenID string `json:"creditCardTokenId"`
}

type removeTokenRequest struct {
	commandRequest
	RemoveCreditCardToken removeCreditCardToken `json:"removeCreditCardToken"`
}

type queryRequest struct {
	commandRequest
	Details map[string]any `json:"details"`
}

// ============================================
// Recurring REST structures
// ============================================

type planPayload struct {
	AccountID            string                   `json:"accountId"`
	PlanCode             string                   `json:"planCode"`
	Description          string                   `json:"description"`
	Interval             models.Interval          `json:"interval"`
	IntervalCount        int                      `json:"intervalCount"`
	MaxPaymentsAllowed   int                      `json:"maxPaymentsAllowed"`
	PaymentAttemptsDelay int                      `json:"paymentAttemptsDelay"`
	AdditionalValues     []models.AdditionalValue `json:"additionalValues"`
	MaxPaymentAttempts   int                      `json:"maxPaymentAttempts,omitempty"`
	MaxPendingPayments   int                      `json:"maxPendingPayments,omitempty"`
	TrialDays            int                      `json:"trialDays,omitempty"`
}

type customerPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type creditCardPayload struct {
	Name     string           `json:"name"`
	Document string           `json:"document"`
	Number   string           `json:"number"`
	ExpMonth int              `json:"expMonth"`
	ExpYear  int              `json:"expYear"`
	Type     models.Franchise `json:"type"`
	Address  *models.Address  `json:"address,omitempty"`
}

type cardToken struct {
	Token string `json:"token"`
}

type subscriptionCustomer struct {
	ID          string      `json:"id"`
	CreditCards []cardToken `json:"creditCards"`
}

type planReference struct {
	PlanCode string `json:"planCode"`
}

type billItemPayload struct {
	Description      string                   `json:"description"`
	AdditionalValues []models.AdditionalValue `json:"additionalValues"`
}

type subscriptionPayload struct {
	Quantity           int                  `json:"quantity,omitempty"`
	Installments       int                  `json:"installments,omitempty"`
	TrialDays          int                  `json:"trialDays,omitempty"`
	ImmediatePayment   *bool                `json:"immediatePayment,omitempty"`
	Extra1             string               `json:"extra1,omitempty"`
	Extra2             string               `json:"extra2,omitempty"`
	Customer           subscriptionCustomer `json:"customer"`
	Plan               planReference        `json:"plan"`
	DeliveryAddress    *models.Address      `json:"deliveryAddress,omitempty"`
	NotifyURL          string               `json:"notifyUrl,omitempty"`
	RecurringBillItems []billItemPayload    `json:"recurringBillItems,omitempty"`
}

type subscriptionUpdatePayload struct {
	CreditCardToken string `json:"creditCardToken"`
}

// ============================================
// Amount helpers
// ============================================

// amountPattern is a non-negative plain decimal with at most two decimal
// digits. Signs, exponents and leading zeros are not accepted.
var amountPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)(\.[0-9]{1,2})?$`)

// parseAmount validates a decimal amount and returns it as a JSON number.
func parseAmount(field, raw string) (json.Number, error) {
	s := strings.TrimSpace(raw)
	if !amountPattern.MatchString(s) {
		return "", &eligibility.InvalidValueError{Field: field, Value: raw}
	}
	return json.Number(s), nil
}

// optionalAmount is parseAmount for fields that may be left empty.
func optionalAmount(field, raw string) (json.Number, bool, error) {
	if strings.TrimSpace(raw) == "" {
		return "", false, nil
	}
	n, err := parseAmount(field, raw)
	return n, err == nil, err
}

// requireFields takes (field, value) pairs and rejects the first blank value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return &eligibility.InvalidValueError{Field: pairs[i], Value: pairs[i+1]}
		}
	}
	return nil
}

// namedValues builds the recurring API additionalValues list; empty tax
// amounts are skipped.
func namedValues(prefix, value, tax, taxReturnBase string, currency models.Currency) ([]models.AdditionalValue, error) {
	v, err := parseAmount("value", value)
	if err != nil {
		return nil, err
	}
	values := []models.AdditionalValue{{Name: prefix + "_VALUE", Value: v, Currency: currency}}

	if t, ok, err := optionalAmount("tax", tax); err != nil {
		return nil, err
	} else if ok {
		values = append(values, models.AdditionalValue{Name: prefix + "_TAX", Value: t, Currency: currency})
	}
	if b, ok, err := optionalAmount("taxReturnBase", taxReturnBase); err != nil {
		return nil, err
	} else if ok {
		values = append(values, models.AdditionalValue{Name: prefix + "_TAX_RETURN_BASE", Value: b, Currency: currency})
	}
	return values, nil
}
