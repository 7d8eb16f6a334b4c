package models

import (
	"slices"
	"strings"
)

// Country is a PayU processing country, identified by its ISO 3166-1 alpha-2 code.
type Country string

const (
	CountryArgentina Country = "AR"
	CountryBrazil    Country = "BR"
	CountryColombia  Country = "CO"
	CountryMexico    Country = "MX"
	CountryPanama    Country = "PA"
	CountryPeru      Country = "PE"
	CountryChile     Country = "CL"
)

var countries = []Country{
	CountryArgentina,
	CountryBrazil,
	CountryColombia,
	CountryMexico,
	CountryPanama,
	CountryPeru,
	CountryChile,
}

// Countries returns every supported country.
func Countries() []Country { return slices.Clone(countries) }

var countryAliases = map[string]Country{
	"AR":        CountryArgentina,
	"ARGENTINA": CountryArgentina,
	"BR":        CountryBrazil,
	"BRAZIL":    CountryBrazil,
	"BRASIL":    CountryBrazil,
	"CO":        CountryColombia,
	"COLOMBIA":  CountryColombia,
	"MX":        CountryMexico,
	"MEXICO":    CountryMexico,
	"MÉXICO":    CountryMexico,
	"PA":        CountryPanama,
	"PANAMA":    CountryPanama,
	"PANAMÁ":    CountryPanama,
	"PE":        CountryPeru,
	"PERU":      CountryPeru,
	"PERÚ":      CountryPeru,
	"CL":        CountryChile,
	"CHILE":     CountryChile,
}

// ParseCountry resolves a country code or name (case-insensitive) to a Country.
func ParseCountry(s string) (Country, bool) {
	c, ok := countryAliases[strings.ToUpper(strings.TrimSpace(s))]
	return c, ok
}

// IsValid reports whether c is a supported country.
func (c Country) IsValid() bool {
	for _, known := range countries {
		if c == known {
			return true
		}
	}
	return false
}

// Currency returns the currency PayU processes card payments in for c.
func (c Country) Currency() Currency {
	switch c {
	case CountryArgentina:
		return CurrencyARS
	case CountryBrazil:
		return CurrencyBRL
	case CountryColombia:
		return CurrencyCOP
	case CountryMexico:
		return CurrencyMXN
	case CountryPeru:
		return CurrencyPEN
	case CountryChile:
		return CurrencyCLP
	default:
		return CurrencyUSD
	}
}

// Franchise is a card network as named by the PayU paymentMethod field.
type Franchise string

const (
	FranchiseVisa            Franchise = "VISA"
	FranchiseMastercard      Franchise = "MASTERCARD"
	FranchiseAmex            Franchise = "AMEX"
	FranchiseDiners          Franchise = "DINERS"
	FranchiseElo             Franchise = "ELO"
	FranchiseHipercard       Franchise = "HIPERCARD"
	FranchiseCencosud        Franchise = "CENCOSUD"
	FranchiseCabal           Franchise = "CABAL"
	FranchiseArgencard       Franchise = "ARGENCARD"
	FranchiseNaranja         Franchise = "NARANJA"
	FranchiseShopping        Franchise = "SHOPPING"
	FranchiseCodensa         Franchise = "CODENSA"
	FranchiseVisaDebit       Franchise = "VISA_DEBIT"
	FranchiseMastercardDebit Franchise = "MASTERCARD_DEBIT"
)

var franchises = []Franchise{
	FranchiseVisa,
	FranchiseMastercard,
	FranchiseAmex,
	FranchiseDiners,
	FranchiseElo,
	FranchiseHipercard,
	FranchiseCencosud,
	FranchiseCabal,
	FranchiseArgencard,
	FranchiseNaranja,
	FranchiseShopping,
	FranchiseCodensa,
	FranchiseVisaDebit,
	FranchiseMastercardDebit,
}

// Franchises returns every known franchise.
func Franchises() []Franchise { return slices.Clone(franchises) }

var franchiseAliases = map[string]Franchise{
	"MC":               FranchiseMastercard,
	"MASTER":           FranchiseMastercard,
	"AMERICAN_EXPRESS": FranchiseAmex,
	"DINERS_CLUB":      FranchiseDiners,
	"VISA_ELECTRON":    FranchiseVisaDebit,
	"MAESTRO":          FranchiseMastercardDebit,
}

// ParseFranchise resolves a franchise name (case-insensitive, spaces or
// dashes accepted in place of underscores) to a Franchise.
func ParseFranchise(s string) (Franchise, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	if f := Franchise(norm); f.IsValid() {
		return f, true
	}
	f, ok := franchiseAliases[norm]
	return f, ok
}

// IsValid reports whether f is a known franchise.
func (f Franchise) IsValid() bool {
	for _, known := range franchises {
		if f == known {
			return true
		}
	}
	return false
}

// StepClass buckets transaction types for eligibility lookups.
type StepClass int

const (
	// StepClassNone covers VOID and REFUND, which act on an existing transaction.
	StepClassNone StepClass = iota
	// StepClassOneStep covers AUTHORIZATION and CAPTURE.
	StepClassOneStep
	// StepClassCombined covers AUTHORIZATION_AND_CAPTURE.
	StepClassCombined
)

func (s StepClass) String() string {
	switch s {
	case StepClassOneStep:
		return "one-step"
	case StepClassCombined:
		return "combined"
	default:
		return "none"
	}
}

// TransactionType is the PayU transaction.type field.
type TransactionType string

const (
	TransactionAuthorization           TransactionType = "AUTHORIZATION"
	TransactionCapture                 TransactionType = "CAPTURE"
	TransactionAuthorizationAndCapture TransactionType = "AUTHORIZATION_AND_CAPTURE"
	TransactionVoid                    TransactionType = "VOID"
	TransactionRefund                  TransactionType = "REFUND"
)

var transactionTypes = []TransactionType{
	TransactionAuthorization,
	TransactionCapture,
	TransactionAuthorizationAndCapture,
	TransactionVoid,
	TransactionRefund,
}

// TransactionTypes returns every transaction type.
func TransactionTypes() []TransactionType { return slices.Clone(transactionTypes) }

// ParseTransactionType resolves a transaction type name (case-insensitive).
func ParseTransactionType(s string) (TransactionType, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	t := TransactionType(norm)
	return t, t.IsValid()
}

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	for _, known := range transactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// StepClass returns the eligibility bucket of t.
func (t TransactionType) StepClass() StepClass {
	switch t {
	case TransactionAuthorization, TransactionCapture:
		return StepClassOneStep
	case TransactionAuthorizationAndCapture:
		return StepClassCombined
	default:
		return StepClassNone
	}
}

// Flow distinguishes direct card payments from payments with a stored card token.
type Flow string

const (
	FlowPayment      Flow = "PAYMENT"
	FlowTokenization Flow = "TOKENIZATION"
)

var flows = []Flow{FlowPayment, FlowTokenization}

// Flows returns every flow.
func Flows() []Flow { return slices.Clone(flows) }

// ParseFlow resolves a flow name (case-insensitive). "TOKEN" is accepted
// as shorthand for TOKENIZATION.
func ParseFlow(s string) (Flow, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAYMENT":
		return FlowPayment, true
	case "TOKENIZATION", "TOKEN":
		return FlowTokenization, true
	}
	return "", false
}

// IsValid reports whether f is a known flow.
func (f Flow) IsValid() bool {
	return f == FlowPayment || f == FlowTokenization
}

// Currency is an ISO 4217 currency code accepted by PayU.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyBRL Currency = "BRL"
	CurrencyCOP Currency = "COP"
	CurrencyMXN Currency = "MXN"
	CurrencyPEN Currency = "PEN"
	CurrencyCLP Currency = "CLP"
	CurrencyUSD Currency = "USD"
)

// Command is the PayU service.cgi command name.
type Command string

const (
	CommandPing                          Command = "PING"
	CommandGetPaymentMethods             Command = "GET_PAYMENT_METHODS"
	CommandGetBanksList                  Command = "GET_BANKS_LIST"
	CommandSubmitTransaction             Command = "SUBMIT_TRANSACTION"
	CommandCreateToken                   Command = "CREATE_TOKEN"
	CommandGetTokens                     Command = "GET_TOKENS"
	CommandRemoveToken                   Command = "REMOVE_TOKEN"
	CommandCreateBatchTokens             Command = "CREATE_BATCH_TOKENS"
	CommandProcessBatchTransactionsToken Command = "PROCESS_BATCH_TRANSACTIONS_TOKEN"
	CommandOrderDetail                   Command = "ORDER_DETAIL"
	CommandOrderDetailByReferenceCode    Command = "ORDER_DETAIL_BY_REFERENCE_CODE"
	CommandTransactionResponseDetail     Command = "TRANSACTION_RESPONSE_DETAIL"
)

// Language selects the language of PayU messages and buyer emails.
type Language string

const (
	LanguageES Language = "es"
	LanguageEN Language = "en"
	LanguagePT Language = "pt"
)

// Interval is the billing period of a recurring plan.
type Interval string

const (
	IntervalDay   Interval = "DAY"
	IntervalWeek  Interval = "WEEK"
	IntervalMonth Interval = "MONTH"
	IntervalYear  Interval = "YEAR"
)

// IsValid reports whether i is a known billing interval.
func (i Interval) IsValid() bool {
	switch i {
	case IntervalDay, IntervalWeek, IntervalMonth, IntervalYear:
		return true
	}
	return false
}
