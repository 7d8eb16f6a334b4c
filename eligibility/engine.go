// Package eligibility decides which card franchises PayU accepts for a
// country, flow and transaction type, and whether the card security code
// must accompany the transaction.
//
// The policy is static data that mirrors processor capabilities per
// country. Every function in this package is pure and safe for concurrent use.
package eligibility

import (
	"strings"

	"github.com/hugochinchilla79/payu_sdk/models"
)

// FranchiseSet is an immutable set of franchises. The zero value is the
// Unsupported marker: the processor does not offer the flow for that
// combination at all.
type FranchiseSet struct {
	members []models.Franchise
}

// Unsupported marks a (country, flow, step class) without any eligible franchise.
var Unsupported = FranchiseSet{}

func setOf(fs ...models.Franchise) FranchiseSet {
	return FranchiseSet{members: fs}
}

// Supported reports whether the set admits at least one franchise.
func (s FranchiseSet) Supported() bool {
	return len(s.members) > 0
}

// Contains reports whether f is eligible.
func (s FranchiseSet) Contains(f models.Franchise) bool {
	for _, m := range s.members {
		if m == f {
			return true
		}
	}
	return false
}

// Franchises returns a copy of the members in policy order.
func (s FranchiseSet) Franchises() []models.Franchise {
	out := make([]models.Franchise, len(s.members))
	copy(out, s.members)
	return out
}

func (s FranchiseSet) String() string {
	if !s.Supported() {
		return "unsupported"
	}
	names := make([]string, len(s.members))
	for i, m := range s.members {
		names[i] = string(m)
	}
	return strings.Join(names, ",")
}

// AllowedFranchises returns the franchises PayU admits for the country,
// transaction type and flow. A supported country without any franchise for
// the combination yields Unsupported and a nil error.
//
// VOID and REFUND act on an existing transaction and carry no franchise
// check; asking for them returns an *InvalidValueError.
func AllowedFranchises(country models.Country, txType models.TransactionType, flow models.Flow) (FranchiseSet, error) {
	if !country.IsValid() {
		return Unsupported, &InvalidCountryError{Country: country}
	}
	if !flow.IsValid() {
		return Unsupported, &InvalidValueError{Field: "flow", Value: string(flow)}
	}
	class := txType.StepClass()
	if class == models.StepClassNone {
		return Unsupported, &InvalidValueError{Field: "transactionType", Value: string(txType)}
	}
	return franchisePolicy[policyKey{country, flow, class}], nil
}

// CVVRequired reports whether the security code is mandatory for the
// franchise, country, transaction type and flow. VOID and REFUND never
// require it.
func CVVRequired(franchise models.Franchise, country models.Country, txType models.TransactionType, flow models.Flow) (bool, error) {
	if !country.IsValid() {
		return false, &InvalidCountryError{Country: country}
	}
	if !flow.IsValid() {
		return false, &InvalidValueError{Field: "flow", Value: string(flow)}
	}
	class := txType.StepClass()
	if class == models.StepClassNone {
		return false, nil
	}

	rule := cvvPolicy[cvvKey{country, flow}]
	if rule.always {
		return !contains(rule.exempt, franchise), nil
	}
	return class == models.StepClassCombined && contains(rule.combined, franchise), nil
}

func contains(fs []models.Franchise, f models.Franchise) bool {
	for _, m := range fs {
		if m == f {
			return true
		}
	}
	return false
}
