package models

import "time"

// Address is a postal address attached to buyers, payers and cards.
type Address struct {
	Street1    string `json:"street1,omitempty"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Buyer is the customer placing the order.
type Buyer struct {
	MerchantBuyerID string   `json:"merchantBuyerId,omitempty"`
	FullName        string   `json:"fullName,omitempty"`
	EmailAddress    string   `json:"emailAddress,omitempty"`
	ContactPhone    string   `json:"contactPhone,omitempty"`
	DNINumber       string   `json:"dniNumber,omitempty"`
	ShippingAddress *Address `json:"shippingAddress,omitempty"`
}

// Payer is the card holder paying the order.
type Payer struct {
	MerchantPayerID string   `json:"merchantPayerId,omitempty"`
	FullName        string   `json:"fullName,omitempty"`
	EmailAddress    string   `json:"emailAddress,omitempty"`
	ContactPhone    string   `json:"contactPhone,omitempty"`
	DNINumber       string   `json:"dniNumber,omitempty"`
	BillingAddress  *Address `json:"billingAddress,omitempty"`
}

// CreditCard contains the card data sent with a direct payment.
type CreditCard struct {
	// Number is the full card number (PAN).
	Number string `json:"number"`

	// SecurityCode is the CVV. Whether it is mandatory depends on the
	// country, franchise and transaction type.
	SecurityCode string `json:"securityCode,omitempty"`

	// ExpirationDate is formatted YYYY/MM.
	ExpirationDate string `json:"expirationDate"`

	// Name is the card holder name as printed on the card.
	Name string `json:"name"`
}

// Device identifies the device the buyer paid from (anti-fraud data).
type Device struct {
	SessionID string
	IPAddress string
	Cookie    string
	UserAgent string
}

// PaymentRequest is the input for a direct card payment.
type PaymentRequest struct {
	// ReferenceCode identifies the order in the merchant's system.
	ReferenceCode string

	Description string

	// Value is the total amount (TX_VALUE), e.g. "10000" or "10000.00".
	Value string

	// Tax and TaxReturnBase are the Colombian VAT values (TX_TAX,
	// TX_TAX_RETURN_BASE). Leave empty elsewhere.
	Tax           string
	TaxReturnBase string

	// Currency defaults to the processing currency of Country.
	Currency Currency

	Country Country

	// Type is AUTHORIZATION or AUTHORIZATION_AND_CAPTURE.
	// Defaults to AUTHORIZATION_AND_CAPTURE.
	Type TransactionType

	// PaymentMethod is the card franchise. If empty, it is detected from
	// the card number.
	PaymentMethod Franchise

	Buyer           *Buyer
	Payer           *Payer
	CreditCard      CreditCard
	ShippingAddress *Address
	Device          Device

	// ExtraParameters carries processor options such as INSTALLMENTS_NUMBER.
	ExtraParameters map[string]any

	// Language overrides the client language for buyer emails.
	Language  Language
	NotifyURL string
}

// TokenPaymentRequest is the input for a payment with a stored card token.
type TokenPaymentRequest struct {
	ReferenceCode string
	Description   string
	Value         string
	Tax           string
	TaxReturnBase string
	Currency      Currency
	Country       Country

	// Type is AUTHORIZATION or AUTHORIZATION_AND_CAPTURE.
	// Defaults to AUTHORIZATION_AND_CAPTURE.
	Type TransactionType

	// PaymentMethod is the franchise of the tokenized card. Required.
	PaymentMethod Franchise

	CreditCardTokenID string

	// SecurityCode is only mandatory where the CVV policy requires it.
	SecurityCode string

	Buyer           *Buyer
	Payer           *Payer
	ShippingAddress *Address
	Device          Device
	ExtraParameters map[string]any
	Language        Language
	NotifyURL       string
}

// TransactionReference points at a previously authorized transaction.
type TransactionReference struct {
	OrderID             int64
	ParentTransactionID string

	// Reason is required by PayU for voids and refunds.
	Reason string
}

// CaptureRequest captures a previous authorization.
type CaptureRequest struct {
	TransactionReference

	// Value and Currency are set for partial captures only.
	Value    string
	Currency Currency
}

// CreateTokenRequest registers a card and returns its token.
type CreateTokenRequest struct {
	PayerID              string
	Name                 string
	IdentificationNumber string
	PaymentMethod        Franchise
	Number               string
	ExpirationDate       string
}

// TokenQuery filters GET_TOKENS. Either CreditCardTokenID or a date range is required.
type TokenQuery struct {
	PayerID           string
	CreditCardTokenID string
	StartDate         time.Time
	EndDate           time.Time
}

// RemoveTokenRequest deletes a stored card token.
type RemoveTokenRequest struct {
	PayerID           string
	CreditCardTokenID string
}

// Plan is a recurring billing plan.
type Plan struct {
	PlanCode             string
	Description          string
	Interval             Interval
	IntervalCount        int
	MaxPaymentsAllowed   int
	PaymentAttemptsDelay int
	Value                string
	Tax                  string
	TaxReturnBase        string
	Currency             Currency

	// Optional; zero values are omitted.
	MaxPaymentAttempts int
	MaxPendingPayments int
	TrialDays          int
}

// Customer is a recurring billing customer.
type Customer struct {
	FullName string
	Email    string
}

// RecurringCreditCard is a card registered to a recurring billing customer.
type RecurringCreditCard struct {
	CustomerID string
	Name       string
	Document   string
	Number     string
	ExpMonth   int
	ExpYear    int
	Type       Franchise
	Address    *Address
}

// BillItem is an extra charge created together with a subscription.
type BillItem struct {
	Description   string
	Value         string
	Tax           string
	TaxReturnBase string
	Currency      Currency
}

// Subscription links a customer and card to a plan.
type Subscription struct {
	CustomerID      string
	CreditCardToken string
	PlanCode        string

	// Optional fields; zero values are omitted.
	Quantity           int
	Installments       int
	TrialDays          int
	ImmediatePayment   *bool
	Extra1             string
	Extra2             string
	DeliveryAddress    *Address
	NotifyURL          string
	RecurringBillItems []BillItem
}

// AdditionalCharge adds an extra item to the current invoice of a subscription.
type AdditionalCharge struct {
	Description   string
	Value         string
	Tax           string
	TaxReturnBase string
	Currency      Currency
}

// BillQuery filters recurring bills of a customer. The date range is only
// sent when both ends are set.
type BillQuery struct {
	CustomerID string
	DateBegin  time.Time
	DateFinal  time.Time
}
