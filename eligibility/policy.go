package eligibility

import (
	"fmt"

	"github.com/hugochinchilla79/payu_sdk/models"
)

type policyKey struct {
	country models.Country
	flow    models.Flow
	class   models.StepClass
}

type cvvKey struct {
	country models.Country
	flow    models.Flow
}

// cvvRule describes when a security code is mandatory.
//
// With always set, every franchise needs it under every transaction type
// except the franchises in exempt. Otherwise only the franchises in combined
// need it, and only under AUTHORIZATION_AND_CAPTURE.
type cvvRule struct {
	always   bool
	exempt   []models.Franchise
	combined []models.Franchise
}

// Shorthands keep the tables below readable.
const (
	visa       = models.FranchiseVisa
	mastercard = models.FranchiseMastercard
	amex       = models.FranchiseAmex
	diners     = models.FranchiseDiners
	elo        = models.FranchiseElo
	hipercard  = models.FranchiseHipercard
	cencosud   = models.FranchiseCencosud
	cabal      = models.FranchiseCabal
	argencard  = models.FranchiseArgencard
	naranja    = models.FranchiseNaranja
	shopping   = models.FranchiseShopping
	codensa    = models.FranchiseCodensa
	visaDebit  = models.FranchiseVisaDebit

	payment      = models.FlowPayment
	tokenization = models.FlowTokenization
	oneStep      = models.StepClassOneStep
	combined     = models.StepClassCombined
)

// franchisePolicy is the franchise table per (country, flow, step class).
// A nil set marks the combination as unsupported by the processor.
var franchisePolicy = map[policyKey]FranchiseSet{
	{models.CountryArgentina, payment, oneStep}:  setOf(visa, mastercard, amex, shopping, cabal, argencard, cencosud),
	{models.CountryArgentina, payment, combined}: setOf(visa, mastercard, amex, shopping, cabal, argencard, cencosud, naranja),
	{models.CountryBrazil, payment, oneStep}:     setOf(visa, mastercard, amex, diners, hipercard, elo),
	{models.CountryBrazil, payment, combined}:    setOf(visa, mastercard, amex, diners, hipercard, elo),
	{models.CountryColombia, payment, oneStep}:   Unsupported,
	{models.CountryColombia, payment, combined}:  setOf(visa, mastercard, amex, diners, codensa, visaDebit),
	{models.CountryMexico, payment, oneStep}:     setOf(visa, mastercard),
	{models.CountryMexico, payment, combined}:    setOf(visa, mastercard, amex),
	{models.CountryPanama, payment, oneStep}:     setOf(visa, mastercard),
	{models.CountryPanama, payment, combined}:    setOf(visa, mastercard),
	{models.CountryPeru, payment, oneStep}:       setOf(visa),
	{models.CountryPeru, payment, combined}:      setOf(visa, mastercard, diners, amex),
	{models.CountryChile, payment, oneStep}:      Unsupported,
	{models.CountryChile, payment, combined}:     setOf(visa, mastercard, amex, diners),

	{models.CountryArgentina, tokenization, oneStep}:  Unsupported,
	{models.CountryArgentina, tokenization, combined}: setOf(visa, mastercard, amex, naranja, shopping, cabal, argencard, cencosud),
	{models.CountryBrazil, tokenization, oneStep}:     setOf(visa, mastercard, amex, diners, elo),
	{models.CountryBrazil, tokenization, combined}:    Unsupported,
	{models.CountryColombia, tokenization, oneStep}:   Unsupported,
	{models.CountryColombia, tokenization, combined}:  setOf(visa, mastercard, amex, diners),
	{models.CountryMexico, tokenization, oneStep}:     Unsupported,
	{models.CountryMexico, tokenization, combined}:    setOf(visa, mastercard, amex),
	{models.CountryPanama, tokenization, oneStep}:     Unsupported,
	{models.CountryPanama, tokenization, combined}:    setOf(visa, mastercard),
	{models.CountryPeru, tokenization, oneStep}:       Unsupported,
	{models.CountryPeru, tokenization, combined}:      setOf(visa, mastercard),
	{models.CountryChile, tokenization, oneStep}:      Unsupported,
	{models.CountryChile, tokenization, combined}:     Unsupported,
}

var cvvPolicy = map[cvvKey]cvvRule{
	// Unconfirmed with PayU: direct payments assume a mandatory security
	// code everywhere except Codensa in Colombia.
	{models.CountryArgentina, payment}: {always: true},
	{models.CountryBrazil, payment}:    {always: true},
	{models.CountryColombia, payment}:  {always: true, exempt: []models.Franchise{codensa}},
	{models.CountryMexico, payment}:    {always: true},
	{models.CountryPanama, payment}:    {always: true},
	{models.CountryPeru, payment}:      {always: true},
	{models.CountryChile, payment}:     {always: true},

	{models.CountryArgentina, tokenization}: {combined: []models.Franchise{visa, mastercard, amex, naranja, shopping, cabal, argencard, cencosud}},
	{models.CountryBrazil, tokenization}:    {},
	{models.CountryColombia, tokenization}:  {},
	{models.CountryMexico, tokenization}:    {combined: []models.Franchise{amex}},
	{models.CountryPanama, tokenization}:    {combined: []models.Franchise{visa, mastercard}},
	{models.CountryPeru, tokenization}:      {combined: []models.Franchise{mastercard}},
	{models.CountryChile, tokenization}:     {always: true},
}

func init() {
	if err := CheckPolicy(); err != nil {
		panic(err)
	}
}

// CheckPolicy verifies that every (country, flow, step class) combination
// has a franchise entry and every (country, flow) pair has a CVV rule.
func CheckPolicy() error {
	for _, c := range models.Countries() {
		for _, f := range models.Flows() {
			for _, class := range []models.StepClass{oneStep, combined} {
				if _, ok := franchisePolicy[policyKey{c, f, class}]; !ok {
					return fmt.Errorf("eligibility: no franchise policy for %s %s %s", c, f, class)
				}
			}
			if _, ok := cvvPolicy[cvvKey{c, f}]; !ok {
				return fmt.Errorf("eligibility: no cvv policy for %s %s", c, f)
			}
		}
	}
	return nil
}

// PolicyEntry is one row of the franchise policy.
type PolicyEntry struct {
	Country    models.Country
	Flow       models.Flow
	StepClass  models.StepClass
	Franchises FranchiseSet
}

// Policy returns the franchise policy in a stable order: countries, then
// flows, then step classes.
func Policy() []PolicyEntry {
	entries := make([]PolicyEntry, 0, len(franchisePolicy))
	for _, c := range models.Countries() {
		for _, f := range models.Flows() {
			for _, class := range []models.StepClass{oneStep, combined} {
				entries = append(entries, PolicyEntry{
					Country:    c,
					Flow:       f,
					StepClass:  class,
					Franchises: franchisePolicy[policyKey{c, f, class}],
				})
			}
		}
	}
	return entries
}
