package models

import "encoding/json"

// APIResponse wraps a parsed response together with HTTP metadata.
type APIResponse[T any] struct {
	// HTTPStatus is the HTTP status code returned by PayU.
	HTTPStatus int

	// Body is the raw response body.
	Body []byte

	// Data is the parsed response.
	Data T
}

// Envelope is the result header shared by every service.cgi response.
type Envelope struct {
	// Code is SUCCESS or ERROR.
	Code string `json:"code"`

	// Error is set when Code is ERROR.
	Error string `json:"error,omitempty"`
}

// Header returns the envelope itself; it lets generic code reach the
// envelope of any response that embeds it.
func (e Envelope) Header() Envelope { return e }

// Response codes of the service.cgi envelope.
const (
	CodeSuccess = "SUCCESS"
	CodeError   = "ERROR"
)

// Transaction states reported in TransactionResult.State.
const (
	StateApproved = "APPROVED"
	StateDeclined = "DECLINED"
	StateError    = "ERROR"
	StateExpired  = "EXPIRED"
	StatePending  = "PENDING"
)

// PingResponse is the reply to PING.
type PingResponse struct {
	Envelope
}

// PaymentMethod is one entry of GET_PAYMENT_METHODS.
type PaymentMethod struct {
	ID          json.Number `json:"id"`
	Description string      `json:"description"`
	Country     string      `json:"country"`
	Enabled     Flag        `json:"enabled"`
}

// PaymentMethodsResponse is the reply to GET_PAYMENT_METHODS.
type PaymentMethodsResponse struct {
	Envelope
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
}

// Bank is one entry of GET_BANKS_LIST.
type Bank struct {
	ID          json.Number `json:"id"`
	Description string      `json:"description"`
	PSECode     string      `json:"pseCode"`
}

// BanksListResponse is the reply to GET_BANKS_LIST.
type BanksListResponse struct {
	Envelope
	Banks []Bank `json:"banks"`
}

// TransactionResult is the processor's verdict on a submitted transaction.
type TransactionResult struct {
	OrderID                            json.Number    `json:"orderId"`
	TransactionID                      string         `json:"transactionId"`
	State                              string         `json:"state"`
	PaymentNetworkResponseCode         string         `json:"paymentNetworkResponseCode,omitempty"`
	PaymentNetworkResponseErrorMessage string         `json:"paymentNetworkResponseErrorMessage,omitempty"`
	TrazabilityCode                    string         `json:"trazabilityCode,omitempty"`
	AuthorizationCode                  string         `json:"authorizationCode,omitempty"`
	PendingReason                      string         `json:"pendingReason,omitempty"`
	ResponseCode                       string         `json:"responseCode"`
	ErrorCode                          string         `json:"errorCode,omitempty"`
	ResponseMessage                    string         `json:"responseMessage,omitempty"`
	TransactionDate                    string         `json:"transactionDate,omitempty"`
	TransactionTime                    string         `json:"transactionTime,omitempty"`
	OperationDate                      json.Number    `json:"operationDate,omitempty"`
	ExtraParameters                    map[string]any `json:"extraParameters,omitempty"`
}

// Approved reports whether the processor approved the transaction.
func (r *TransactionResult) Approved() bool {
	return r != nil && r.State == StateApproved
}

// TransactionResponse is the reply to SUBMIT_TRANSACTION.
type TransactionResponse struct {
	Envelope
	TransactionResponse *TransactionResult `json:"transactionResponse"`
}

// CreditCardToken is a stored card as returned by the tokenization API.
type CreditCardToken struct {
	CreditCardTokenID    string `json:"creditCardTokenId"`
	Name                 string `json:"name,omitempty"`
	PayerID              string `json:"payerId,omitempty"`
	IdentificationNumber string `json:"identificationNumber,omitempty"`
	PaymentMethod        string `json:"paymentMethod,omitempty"`
	MaskedNumber         string `json:"maskedNumber,omitempty"`
	CreationDate         string `json:"creationDate,omitempty"`
}

// TokenResponse is the reply to CREATE_TOKEN and REMOVE_TOKEN.
type TokenResponse struct {
	Envelope
	CreditCardToken *CreditCardToken `json:"creditCardToken"`
}

// TokensResponse is the reply to GET_TOKENS.
type TokensResponse struct {
	Envelope
	CreditCardTokenList []CreditCardToken `json:"creditCardTokenList"`
}

// QueryResult carries the payload of a reports API query.
type QueryResult struct {
	Payload json.RawMessage `json:"payload"`
}

// QueryResponse is the reply to the reports API commands.
type QueryResponse struct {
	Envelope
	Result *QueryResult `json:"result"`
}

// AdditionalValue is a named amount used by the recurring API.
type AdditionalValue struct {
	Name     string      `json:"name"`
	Value    json.Number `json:"value"`
	Currency Currency    `json:"currency"`
}

// PlanResponse is a recurring plan as returned by PayU.
type PlanResponse struct {
	ID                   string            `json:"id"`
	PlanCode             string            `json:"planCode"`
	Description          string            `json:"description"`
	AccountID            string            `json:"accountId"`
	Interval             Interval          `json:"interval"`
	IntervalCount        Count             `json:"intervalCount"`
	MaxPaymentsAllowed   Count             `json:"maxPaymentsAllowed"`
	MaxPaymentAttempts   Count             `json:"maxPaymentAttempts"`
	PaymentAttemptsDelay Count             `json:"paymentAttemptsDelay"`
	MaxPendingPayments   Count             `json:"maxPendingPayments"`
	TrialDays            Count             `json:"trialDays"`
	AdditionalValues     []AdditionalValue `json:"additionalValues"`
}

// CardResponse is a card registered to a recurring customer.
type CardResponse struct {
	Token    string `json:"token"`
	Name     string `json:"name,omitempty"`
	Document string `json:"document,omitempty"`
	Number   string `json:"number,omitempty"`
	Type     string `json:"type,omitempty"`
}

// CustomerResponse is a recurring customer as returned by PayU.
type CustomerResponse struct {
	ID          string         `json:"id"`
	FullName    string         `json:"fullName"`
	Email       string         `json:"email"`
	CreditCards []CardResponse `json:"creditCards,omitempty"`
}

// SubscriptionResponse is a subscription as returned by PayU.
type SubscriptionResponse struct {
	ID                 string            `json:"id"`
	PlanCode           string            `json:"planCode,omitempty"`
	Plan               *PlanResponse     `json:"plan,omitempty"`
	Customer           *CustomerResponse `json:"customer,omitempty"`
	Quantity           json.Number       `json:"quantity,omitempty"`
	Installments       json.Number       `json:"installments,omitempty"`
	CurrentPeriodStart json.Number       `json:"currentPeriodStart,omitempty"`
	CurrentPeriodEnd   json.Number       `json:"currentPeriodEnd,omitempty"`
}

// AdditionalChargeResponse is an extra invoice item as returned by PayU.
type AdditionalChargeResponse struct {
	ID               string            `json:"id"`
	SubscriptionID   string            `json:"subscriptionId,omitempty"`
	Description      string            `json:"description"`
	AdditionalValues []AdditionalValue `json:"additionalValues"`
}

// AdditionalChargesResponse lists extra invoice items.
type AdditionalChargesResponse struct {
	RecurringBillItemList []AdditionalChargeResponse `json:"recurringBillItemList"`
}

// RecurringBill is an invoice of a subscription.
type RecurringBill struct {
	ID             string      `json:"id"`
	OrderID        json.Number `json:"orderId,omitempty"`
	SubscriptionID string      `json:"subscriptionId"`
	State          string      `json:"state"`
	Amount         json.Number `json:"amount"`
	Currency       Currency    `json:"currency"`
	DateCharge     json.Number `json:"dateCharge,omitempty"`
}

// RecurringBillsResponse lists invoices.
type RecurringBillsResponse struct {
	RecurringBillList []RecurringBill `json:"recurringBillList"`
}
