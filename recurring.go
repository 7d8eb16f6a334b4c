package payu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hugochinchilla79/payu_sdk/eligibility"
	"github.com/hugochinchilla79/payu_sdk/models"
)

// billDateLayout is the date format of recurring bill filters.
const billDateLayout = "2006-01-02"

// RecurringService groups the recurring billing REST API: plans, customers,
// cards, subscriptions, additional charges and bills.
type RecurringService struct {
	client *Client
}

// endpoint joins path segments onto the recurring API base URL, escaping
// each one.
func (s *RecurringService) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}
	return s.client.cfg.RecurringURL() + strings.Join(escaped, "/")
}

func recurringCall[T any](ctx context.Context, s *RecurringService, method, endpoint string, payload any) (models.APIResponse[T], error) {
	return call[T](ctx, s.client, method, endpoint, s.client.basicAuth(), payload)
}

// ---- plans ----

// CreatePlan creates a billing plan on the configured account.
func (s *RecurringService) CreatePlan(ctx context.Context, p models.Plan) (models.APIResponse[models.PlanResponse], error) {
	var out models.APIResponse[models.PlanResponse]

	if err := requireFields("planCode", p.PlanCode, "description", p.Description, "accountId", s.client.cfg.AccountID); err != nil {
		return out, err
	}
	if !p.Interval.IsValid() {
		return out, &eligibility.InvalidValueError{Field: "interval", Value: string(p.Interval)}
	}
	values, err := namedValues("PLAN", p.Value, p.Tax, p.TaxReturnBase, p.Currency)
	if err != nil {
		return out, err
	}

	payload := planPayload{
		AccountID:            s.client.cfg.AccountID,
		PlanCode:             p.PlanCode,
		Description:          p.Description,
		Interval:             p.Interval,
		IntervalCount:        p.IntervalCount,
		MaxPaymentsAllowed:   p.MaxPaymentsAllowed,
		PaymentAttemptsDelay: p.PaymentAttemptsDelay,
		AdditionalValues:     values,
		MaxPaymentAttempts:   p.MaxPaymentAttempts,
		MaxPendingPayments:   p.MaxPendingPayments,
		TrialDays:            p.TrialDays,
	}
	return recurringCall[models.PlanResponse](ctx, s, http.MethodPost, s.endpoint("plans"), payload)
}

// GetPlan returns a plan by its code.
func (s *RecurringService) GetPlan(ctx context.Context, planCode string) (models.APIResponse[models.PlanResponse], error) {
	if err := requireFields("planCode", planCode); err != nil {
		return models.APIResponse[models.PlanResponse]{}, err
	}
	return recurringCall[models.PlanResponse](ctx, s, http.MethodGet, s.endpoint("plans", planCode), nil)
}

// UpdatePlan is not supported.
func (s *RecurringService) UpdatePlan(ctx context.Context, planCode string) error {
	return notImplemented("recurring: update plan")
}

// DeletePlan deletes a plan by its code.
func (s *RecurringService) DeletePlan(ctx context.Context, planCode string) (models.APIResponse[json.RawMessage], error) {
	if err := requireFields("planCode", planCode); err != nil {
		return models.APIResponse[json.RawMessage]{}, err
	}
	return recurringCall[json.RawMessage](ctx, s, http.MethodDelete, s.endpoint("plans", planCode), nil)
}

// ---- customers ----

// CreateCustomer registers a customer.
func (s *RecurringService) CreateCustomer(ctx context.Context, cu models.Customer) (models.APIResponse[models.CustomerResponse], error) {
	if err := requireFields("fullName", cu.FullName, "email", cu.Email); err != nil {
		return models.APIResponse[models.CustomerResponse]{}, err
	}
	payload := customerPayload{FullName: cu.FullName, Email: cu.Email}
	return recurringCall[models.CustomerResponse](ctx, s, http.MethodPost, s.endpoint("customers"), payload)
}

// GetCustomer returns a customer and its cards.
func (s *RecurringService) GetCustomer(ctx context.Context, customerID string) (models.APIResponse[models.CustomerResponse], error) {
	if err := requireFields("customerId", customerID); err != nil {
		return models.APIResponse[models.CustomerResponse]{}, err
	}
	return recurringCall[models.CustomerResponse](ctx, s, http.MethodGet, s.endpoint("customers", customerID), nil)
}

// UpdateCustomer is not supported.
func (s *RecurringService) UpdateCustomer(ctx context.Context, customerID string) error {
	return notImplemented("recurring: update customer")
}

// DeleteCustomer deletes a customer.
func (s *RecurringService) DeleteCustomer(ctx context.Context, customerID string) (models.APIResponse[json.RawMessage], error) {
	if err := requireFields("customerId", customerID); err != nil {
		return models.APIResponse[json.RawMessage]{}, err
	}
	return recurringCall[json.RawMessage](ctx, s, http.MethodDelete, s.endpoint("customers", customerID), nil)
}

// ---- credit cards ----

// CreateCreditCard registers a card to a customer and returns its token.
func (s *RecurringService) CreateCreditCard(ctx context.Context, card models.RecurringCreditCard) (models.APIResponse[models.CardResponse], error) {
	var out models.APIResponse[models.CardResponse]

	if err := requireFields("customerId", card.CustomerID, "name", card.Name, "number", card.Number); err != nil {
		return out, err
	}
	franchise := card.Type
	if franchise == "" {
		franchise = DetectFranchise(card.Number)
	}
	if !franchise.IsValid() {
		return out, &eligibility.InvalidValueError{Field: "type", Value: string(card.Type)}
	}
	if card.ExpMonth < 1 || card.ExpMonth > 12 {
		return out, &eligibility.InvalidValueError{Field: "expMonth", Value: strconv.Itoa(card.ExpMonth)}
	}
	if card.ExpYear < 1 {
		return out, &eligibility.InvalidValueError{Field: "expYear", Value: strconv.Itoa(card.ExpYear)}
	}

	payload := creditCardPayload{
		Name:     card.Name,
		Document: card.Document,
		Number:   card.Number,
		ExpMonth: card.ExpMonth,
		ExpYear:  card.ExpYear,
		Type:     franchise,
		Address:  card.Address,
	}
	return recurringCall[models.CardResponse](ctx, s, http.MethodPost, s.endpoint("customers", card.CustomerID, "creditCards"), payload)
}

// GetCreditCard returns a registered card by its token.
func (s *RecurringService) GetCreditCard(ctx context.Context, token string) (models.APIResponse[models.CardResponse], error) {
	if err := requireFields("creditCardId", token); err != nil {
		return models.APIResponse[models.CardResponse]{}, err
	}
	return recurringCall[models.CardResponse](ctx, s, http.MethodGet, s.endpoint("creditCards", token), nil)
}

// UpdateCreditCard is not supported.
func (s *RecurringService) UpdateCreditCard(ctx context.Context, token string) error {
	return notImplemented("recurring: update credit card")
}

// DeleteCreditCard removes a card from a customer.
func (s *RecurringService) DeleteCreditCard(ctx context.Context, customerID, token string) (models.APIResponse[json.RawMessage], error) {
	if err := requireFields("customerId", customerID, "creditCardId", token); err != nil {
		return models.APIResponse[json.RawMessage]{}, err
	}
	return recurringCall[json.RawMessage](ctx, s, http.MethodDelete, s.endpoint("customers", customerID, "creditCards", token), nil)
}

// ---- subscriptions ----

// CreateSubscription subscribes a customer card to a plan.
func (s *RecurringService) CreateSubscription(ctx context.Context, sub models.Subscription) (models.APIResponse[models.SubscriptionResponse], error) {
	var out models.APIResponse[models.SubscriptionResponse]

	if err := requireFields(
		"customerId", sub.CustomerID,
		"creditCardToken", sub.CreditCardToken,
		"planCode", sub.PlanCode,
	); err != nil {
		return out, err
	}

	var items []billItemPayload
	for _, it := range sub.RecurringBillItems {
		values, err := namedValues("ITEM", it.Value, it.Tax, it.TaxReturnBase, it.Currency)
		if err != nil {
			return out, err
		}
		items = append(items, billItemPayload{Description: it.Description, AdditionalValues: values})
	}

	payload := subscriptionPayload{
		Quantity:         sub.Quantity,
		Installments:     sub.Installments,
		TrialDays:        sub.TrialDays,
		ImmediatePayment: sub.ImmediatePayment,
		Extra1:           sub.Extra1,
		Extra2:           sub.Extra2,
		Customer: subscriptionCustomer{
			ID:          sub.CustomerID,
			CreditCards: []cardToken{{Token: sub.CreditCardToken}},
		},
		Plan:               planReference{PlanCode: sub.PlanCode},
		DeliveryAddress:    sub.DeliveryAddress,
		NotifyURL:          sub.NotifyURL,
		RecurringBillItems: items,
	}
	return recurringCall[models.SubscriptionResponse](ctx, s, http.MethodPost, s.endpoint("subscriptions"), payload)
}

// GetSubscription returns a subscription.
func (s *RecurringService) GetSubscription(ctx context.Context, subscriptionID string) (models.APIResponse[models.SubscriptionResponse], error) {
	if err := requireFields("subscriptionId", subscriptionID); err != nil {
		return models.APIResponse[models.SubscriptionResponse]{}, err
	}
	return recurringCall[models.SubscriptionResponse](ctx, s, http.MethodGet, s.endpoint("subscriptions", subscriptionID), nil)
}

// UpdateSubscription replaces the card token a subscription is charged to.
// The card token is the only field PayU allows to change.
func (s *RecurringService) UpdateSubscription(ctx context.Context, subscriptionID, creditCardToken string) (models.APIResponse[models.SubscriptionResponse], error) {
	if err := requireFields("subscriptionId", subscriptionID, "creditCardToken", creditCardToken); err != nil {
		return models.APIResponse[models.SubscriptionResponse]{}, err
	}
	payload := subscriptionUpdatePayload{CreditCardToken: creditCardToken}
	return recurringCall[models.SubscriptionResponse](ctx, s, http.MethodPut, s.endpoint("subscriptions", subscriptionID), payload)
}

// DeleteSubscription cancels a subscription.
func (s *RecurringService) DeleteSubscription(ctx context.Context, subscriptionID string) (models.APIResponse[json.RawMessage], error) {
	if err := requireFields("subscriptionId", subscriptionID); err != nil {
		return models.APIResponse[json.RawMessage]{}, err
	}
	return recurringCall[json.RawMessage](ctx, s, http.MethodDelete, s.endpoint("subscriptions", subscriptionID), nil)
}

// ---- additional charges ----

func chargePayload(ch models.AdditionalCharge) (billItemPayload, error) {
	if err := requireFields("description", ch.Description); err != nil {
		return billItemPayload{}, err
	}
	values, err := namedValues("ITEM", ch.Value, ch.Tax, ch.TaxReturnBase, ch.Currency)
	if err != nil {
		return billItemPayload{}, err
	}
	return billItemPayload{Description: ch.Description, AdditionalValues: values}, nil
}

// CreateAdditionalCharge adds an extra item to the next invoice of a subscription.
func (s *RecurringService) CreateAdditionalCharge(ctx context.Context, subscriptionID string, ch models.AdditionalCharge) (models.APIResponse[models.AdditionalChargeResponse], error) {
	var out models.APIResponse[models.AdditionalChargeResponse]
	if err := requireFields("subscriptionId", subscriptionID); err != nil {
		return out, err
	}
	payload, err := chargePayload(ch)
	if err != nil {
		return out, err
	}
	return recurringCall[models.AdditionalChargeResponse](ctx, s, http.MethodPost, s.endpoint("subscriptions", subscriptionID, "recurringBillItems"), payload)
}

// GetAdditionalCharge returns an additional charge by id.
func (s *RecurringService) GetAdditionalCharge(ctx context.Context, chargeID string) (models.APIResponse[models.AdditionalChargeResponse], error) {
	if err := requireFields("recurringBillItemId", chargeID); err != nil {
		return models.APIResponse[models.AdditionalChargeResponse]{}, err
	}
	return recurringCall[models.AdditionalChargeResponse](ctx, s, http.MethodGet, s.endpoint("recurringBillItems", chargeID), nil)
}

// GetAdditionalChargesByDescription lists additional charges with a description.
func (s *RecurringService) GetAdditionalChargesByDescription(ctx context.Context, description string) (models.APIResponse[models.AdditionalChargesResponse], error) {
	if err := requireFields("description", description); err != nil {
		return models.APIResponse[models.AdditionalChargesResponse]{}, err
	}
	q := url.Values{"description": {description}}
	return recurringCall[models.AdditionalChargesResponse](ctx, s, http.MethodGet, s.endpoint("recurringBillItems")+"/?"+q.Encode(), nil)
}

// GetAdditionalChargesBySubscription lists the additional charges of a subscription.
func (s *RecurringService) GetAdditionalChargesBySubscription(ctx context.Context, subscriptionID string) (models.APIResponse[models.AdditionalChargesResponse], error) {
	if err := requireFields("subscriptionId", subscriptionID); err != nil {
		return models.APIResponse[models.AdditionalChargesResponse]{}, err
	}
	q := url.Values{"subscriptionId": {subscriptionID}}
	return recurringCall[models.AdditionalChargesResponse](ctx, s, http.MethodGet, s.endpoint("recurringBillItems")+"/?"+q.Encode(), nil)
}

// UpdateAdditionalCharge replaces the description and amounts of an additional charge.
func (s *RecurringService) UpdateAdditionalCharge(ctx context.Context, chargeID string, ch models.AdditionalCharge) (models.APIResponse[models.AdditionalChargeResponse], error) {
	var out models.APIResponse[models.AdditionalChargeResponse]
	if err := requireFields("recurringBillItemId", chargeID); err != nil {
		return out, err
	}
	payload, err := chargePayload(ch)
	if err != nil {
		return out, err
	}
	return recurringCall[models.AdditionalChargeResponse](ctx, s, http.MethodPut, s.endpoint("recurringBillItems", chargeID), payload)
}

// DeleteAdditionalCharge removes an additional charge.
func (s *RecurringService) DeleteAdditionalCharge(ctx context.Context, chargeID string) (models.APIResponse[json.RawMessage], error) {
	if err := requireFields("recurringBillItemId", chargeID); err != nil {
		return models.APIResponse[json.RawMessage]{}, err
	}
	return recurringCall[json.RawMessage](ctx, s, http.MethodDelete, s.endpoint("recurringBillItems", chargeID), nil)
}

// ---- bills ----

// GetBillsByCustomer lists the invoices of a customer, optionally within a
// date range.
func (s *RecurringService) GetBillsByCustomer(ctx context.Context, q models.BillQuery) (models.APIResponse[models.RecurringBillsResponse], error) {
	var out models.APIResponse[models.RecurringBillsResponse]
	if err := requireFields("customerId", q.CustomerID); err != nil {
		return out, err
	}
	params := url.Values{"customerId": {q.CustomerID}}
	if !q.DateBegin.IsZero() && !q.DateFinal.IsZero() {
		if q.DateFinal.Before(q.DateBegin) {
			return out, &eligibility.InvalidValueError{Field: "dateFinal", Value: q.DateFinal.Format(billDateLayout)}
		}
		params.Set("dateBegin", q.DateBegin.Format(billDateLayout))
		params.Set("dateFinal", q.DateFinal.Format(billDateLayout))
	}
	return recurringCall[models.RecurringBillsResponse](ctx, s, http.MethodGet, s.endpoint("recurringBill")+"?"+params.Encode(), nil)
}

// GetBillsBySubscription lists the invoices of a subscription.
func (s *RecurringService) GetBillsBySubscription(ctx context.Context, subscriptionID string) (models.APIResponse[models.RecurringBillsResponse], error) {
	if err := requireFields("subscriptionId", subscriptionID); err != nil {
		return models.APIResponse[models.RecurringBillsResponse]{}, err
	}
	params := url.Values{"subscriptionId": {subscriptionID}}
	return recurringCall[models.RecurringBillsResponse](ctx, s, http.MethodGet, s.endpoint("recurringBill")+"?"+params.Encode(), nil)
}
