package eligibility

import (
	"errors"
	"fmt"

	"github.com/hugochinchilla79/payu_sdk/models"
)

// Sentinel errors for matching with errors.Is.
var (
	ErrInvalidCountry       = errors.New("payu: invalid country")
	ErrInvalidValue         = errors.New("payu: invalid value")
	ErrFranchiseUnavailable = errors.New("payu: franchise unavailable")
	ErrCVVRequired          = errors.New("payu: security code required")
)

// InvalidCountryError is returned when a country is outside the supported set.
type InvalidCountryError struct {
	Country models.Country
}

func (e *InvalidCountryError) Error() string {
	return fmt.Sprintf("payu: invalid country %q", e.Country)
}

func (e *InvalidCountryError) Is(target error) bool { return target == ErrInvalidCountry }

// InvalidValueError is returned when a raw input cannot be coerced into its enumeration.
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("payu: invalid value %q for %s", e.Value, e.Field)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// FranchiseUnavailableError is returned when the policy does not admit a
// franchise for the country and transaction type.
type FranchiseUnavailableError struct {
	Franchise       models.Franchise
	TransactionType models.TransactionType
	Country         models.Country
	Flow            models.Flow
}

func (e *FranchiseUnavailableError) Error() string {
	return fmt.Sprintf("payu: franchise %s is not available for %s %s in %s",
		e.Franchise, e.Flow, e.TransactionType, e.Country)
}

func (e *FranchiseUnavailableError) Is(target error) bool { return target == ErrFranchiseUnavailable }

// CVVRequiredError is returned when the policy makes the security code
// mandatory and none was supplied.
type CVVRequiredError struct {
	Country         models.Country
	TransactionType models.TransactionType
	Franchise       models.Franchise
}

func (e *CVVRequiredError) Error() string {
	return fmt.Sprintf("payu: security code is required for %s %s in %s",
		e.Franchise, e.TransactionType, e.Country)
}

func (e *CVVRequiredError) Is(target error) bool { return target == ErrCVVRequired }
