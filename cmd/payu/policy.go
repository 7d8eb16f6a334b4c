package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hugochinchilla79/payu_sdk/eligibility"
	"github.com/hugochinchilla79/payu_sdk/models"
)

type policyFlags struct {
	country   string
	franchise string
	txType    string
	flow      string
}

func (f *policyFlags) register(cmd *cobra.Command, withFranchise bool) {
	cmd.Flags().StringVarP(&f.country, "country", "c", "", "Country code or name (AR, BR, CO, MX, PA, PE, CL)")
	cmd.Flags().StringVarP(&f.txType, "type", "t", string(models.TransactionAuthorizationAndCapture), "Transaction type")
	cmd.Flags().StringVarP(&f.flow, "flow", "f", string(models.FlowPayment), "PAYMENT or TOKENIZATION")
	_ = cmd.MarkFlagRequired("country")
	if withFranchise {
		cmd.Flags().StringVar(&f.franchise, "franchise", "", "Card franchise")
		_ = cmd.MarkFlagRequired("franchise")
	}
}

// parse coerces the flags without consulting the policy, so an unsupported
// combination is reported by the engine itself.
func (f *policyFlags) parse() (models.Country, models.TransactionType, models.Flow, error) {
	country, ok := models.ParseCountry(f.country)
	if !ok {
		return "", "", "", &eligibility.InvalidCountryError{Country: models.Country(f.country)}
	}
	txType, ok := models.ParseTransactionType(f.txType)
	if !ok {
		return "", "", "", &eligibility.InvalidValueError{Field: "type", Value: f.txType}
	}
	flow, ok := models.ParseFlow(f.flow)
	if !ok {
		return "", "", "", &eligibility.InvalidValueError{Field: "flow", Value: f.flow}
	}
	return country, txType, flow, nil
}

func eligibilityCmd() *cobra.Command {
	flags := &policyFlags{}
	cmd := &cobra.Command{
		Use:   "eligibility",
		Short: "List the franchises accepted for a country, transaction type and flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			country, txType, flow, err := flags.parse()
			if err != nil {
				return err
			}
			set, err := eligibility.AllowedFranchises(country, txType, flow)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s %s: %s\n", country, flow, txType, set)
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}

func cvvCmd() *cobra.Command {
	flags := &policyFlags{}
	cmd := &cobra.Command{
		Use:   "cvv",
		Short: "Tell whether a security code is mandatory",
		RunE: func(cmd *cobra.Command, args []string) error {
			country, txType, flow, err := flags.parse()
			if err != nil {
				return err
			}
			franchise, ok := models.ParseFranchise(flags.franchise)
			if !ok {
				return &eligibility.InvalidValueError{Field: "franchise", Value: flags.franchise}
			}
			required, err := eligibility.CVVRequired(franchise, country, txType, flow)
			if err != nil {
				return err
			}
			verdict := "optional"
			if required {
				verdict = "required"
			}
			fmt.Printf("%s %s %s %s: security code %s\n", franchise, country, flow, txType, verdict)
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func policyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the franchise eligibility tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "COUNTRY\tFLOW\tCLASS\tFRANCHISES")
			for _, e := range eligibility.Policy() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Country, e.Flow, e.StepClass, e.Franchises)
			}
			return w.Flush()
		},
	}
}
