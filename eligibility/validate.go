package eligibility

import (
	"strings"

	"github.com/hugochinchilla79/payu_sdk/models"
)

// Input is an unvalidated transaction description as received from a caller.
type Input struct {
	Country         string
	Franchise       string
	TransactionType string
	Flow            string
	SecurityCode    string
}

// Request is a transaction that passed the eligibility and CVV policy.
type Request struct {
	Country         models.Country
	Franchise       models.Franchise
	TransactionType models.TransactionType
	Flow            models.Flow
	SecurityCode    string
}

// Validate coerces the raw input into the closed enumerations and checks it
// against the policy. It fails on the first violated precondition, in order:
// unknown values, franchise not eligible, missing mandatory security code.
func Validate(in Input) (Request, error) {
	country, ok := models.ParseCountry(in.Country)
	if !ok {
		return Request{}, &InvalidValueError{Field: "country", Value: in.Country}
	}
	franchise, ok := models.ParseFranchise(in.Franchise)
	if !ok {
		return Request{}, &InvalidValueError{Field: "franchise", Value: in.Franchise}
	}
	txType, ok := models.ParseTransactionType(in.TransactionType)
	if !ok {
		return Request{}, &InvalidValueError{Field: "transactionType", Value: in.TransactionType}
	}
	flow, ok := models.ParseFlow(in.Flow)
	if !ok {
		return Request{}, &InvalidValueError{Field: "flow", Value: in.Flow}
	}

	return ValidateRequest(Request{
		Country:         country,
		Franchise:       franchise,
		TransactionType: txType,
		Flow:            flow,
		SecurityCode:    in.SecurityCode,
	})
}

// ValidateRequest checks already typed values against the policy. The
// security code is trimmed; a blank code counts as absent.
func ValidateRequest(req Request) (Request, error) {
	if !req.Franchise.IsValid() {
		return Request{}, &InvalidValueError{Field: "franchise", Value: string(req.Franchise)}
	}
	if !req.TransactionType.IsValid() {
		return Request{}, &InvalidValueError{Field: "transactionType", Value: string(req.TransactionType)}
	}
	req.SecurityCode = strings.TrimSpace(req.SecurityCode)

	if req.TransactionType.StepClass() != models.StepClassNone {
		allowed, err := AllowedFranchises(req.Country, req.TransactionType, req.Flow)
		if err != nil {
			return Request{}, err
		}
		if !allowed.Contains(req.Franchise) {
			return Request{}, &FranchiseUnavailableError{
				Franchise:       req.Franchise,
				TransactionType: req.TransactionType,
				Country:         req.Country,
				Flow:            req.Flow,
			}
		}
	}

	required, err := CVVRequired(req.Franchise, req.Country, req.TransactionType, req.Flow)
	if err != nil {
		return Request{}, err
	}
	if required && req.SecurityCode == "" {
		return Request{}, &CVVRequiredError{
			Country:         req.Country,
			TransactionType: req.TransactionType,
			Franchise:       req.Franchise,
		}
	}

	return req, nil
}
