package payu

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugochinchilla79/payu_sdk/eligibility"
	"github.com/hugochinchilla79/payu_sdk/models"
)

type seenRequest struct {
	method   string
	path     string
	query    string
	auth     string
	body     map[string]any
	requests int
}

// recurringServer is a fake of the recurring REST API. It records the last
// request it served.
type recurringServer struct {
	mu   sync.Mutex
	seen seenRequest
}

func (s *recurringServer) record(r *http.Request) {
	var body map[string]any
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = seenRequest{
		method:   r.Method,
		path:     r.URL.Path,
		query:    r.URL.RawQuery,
		auth:     r.Header.Get("Authorization"),
		body:     body,
		requests: s.seen.requests + 1,
	}
}

func (s *recurringServer) last() seenRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen
}

func (s *recurringServer) routes() http.Handler {
	reply := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			s.record(r)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, body)
		}
	}
	noContent := func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.WriteHeader(http.StatusNoContent)
	}

	r := chi.NewRouter()
	r.Route("/payments-api/rest/v4.9", func(r chi.Router) {
		r.Post("/plans", reply(`{"id":"p-1","planCode":"gold","interval":"MONTH","intervalCount":1}`))
		r.Get("/plans/{planCode}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "planCode") == "missing" {
				s.record(r)
				http.Error(w, `{"type":"NOT_FOUND"}`, http.StatusNotFound)
				return
			}
			reply(`{"id":"p-1","planCode":"gold"}`)(w, r)
		})
		r.Delete("/plans/{planCode}", noContent)

		r.Post("/customers", reply(`{"id":"c-1","fullName":"Ana","email":"ana@example.com"}`))
		r.Get("/customers/{customerID}", reply(`{"id":"c-1","creditCards":[{"token":"tok-1"}]}`))
		r.Delete("/customers/{customerID}", noContent)
		r.Post("/customers/{customerID}/creditCards", reply(`{"token":"tok-1"}`))
		r.Delete("/customers/{customerID}/creditCards/{token}", noContent)
		r.Get("/creditCards/{token}", reply(`{"token":"tok-1","type":"VISA"}`))

		r.Post("/subscriptions", reply(`{"id":"s-1","plan":{"planCode":"gold"}}`))
		r.Get("/subscriptions/{id}", reply(`{"id":"s-1"}`))
		r.Put("/subscriptions/{id}", reply(`{"id":"s-1"}`))
		r.Delete("/subscriptions/{id}", noContent)

		r.Post("/subscriptions/{id}/recurringBillItems", reply(`{"id":"i-1","description":"extra"}`))
		r.Get("/recurringBillItems/", reply(`{"recurringBillItemList":[{"id":"i-1"},{"id":"i-2"}]}`))
		r.Get("/recurringBillItems/{id}", reply(`{"id":"i-1"}`))
		r.Put("/recurringBillItems/{id}", reply(`{"id":"i-1"}`))
		r.Delete("/recurringBillItems/{id}", noContent)

		r.Get("/recurringBill", reply(`{"recurringBillList":[{"id":"b-1","amount":20000,"currency":"COP"}]}`))
	})
	return r
}

func newRecurringTestClient(t *testing.T) (*Client, *recurringServer) {
	t.Helper()
	fake := &recurringServer{}
	srv := httptest.NewServer(fake.routes())
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.BaseURL = srv.URL
	cfg.Timeout = 5 * time.Second
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c, fake
}

func TestRecurring_Plans(t *testing.T) {
	c, fake := newRecurringTestClient(t)
	ctx := context.Background()

	resp, err := c.Recurring.CreatePlan(ctx, models.Plan{
		PlanCode:             "gold",
		Description:          "Gold plan",
		Interval:             models.IntervalMonth,
		IntervalCount:        1,
		MaxPaymentsAllowed:   12,
		PaymentAttemptsDelay: 1,
		Value:                "20000",
		Tax:                  "3193",
		TaxReturnBase:        "16806",
		Currency:             models.CurrencyCOP,
	})
	require.NoError(t, err)
	assert.Equal(t, "gold", resp.Data.PlanCode)
	assert.Equal(t, http.MethodPost, fake.last().method)
	assert.Equal(t, "/payments-api/rest/v4.9/plans", fake.last().path)
	assert.Equal(t, "Basic cFJSWEtPbDhpa01tdDl1OjRWajhlSzRybG9VZDI3Mkw0OGhzcmFyblVB", fake.last().auth)
	assert.Equal(t, "512321", fake.last().body["accountId"])
	assert.Nil(t, fake.last().body["trialDays"])

	values, ok := fake.last().body["additionalValues"].([]any)
	require.True(t, ok)
	require.Len(t, values, 3)
	assert.Equal(t, "PLAN_VALUE", values[0].(map[string]any)["name"])
	assert.Equal(t, "PLAN_TAX_RETURN_BASE", values[2].(map[string]any)["name"])

	_, err = c.Recurring.GetPlan(ctx, "gold")
	require.NoError(t, err)
	assert.Equal(t, "/payments-api/rest/v4.9/plans/gold", fake.last().path)

	resp2, err := c.Recurring.DeletePlan(ctx, "gold")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp2.HTTPStatus)
	assert.Equal(t, http.MethodDelete, fake.last().method)

	_, err = c.Recurring.CreatePlan(ctx, models.Plan{PlanCode: "x", Description: "x", Interval: "FORTNIGHT", Value: "1"})
	assert.ErrorIs(t, err, eligibility.ErrInvalidValue)
	assert.Equal(t, 3, fake.last().requests)
}

func TestRecurring_CustomersAndCards(t *testing.T) {
	c, fake := newRecurringTestClient(t)
	ctx := context.Background()

	cus, err := c.Recurring.CreateCustomer(ctx, models.Customer{FullName: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "c-1", cus.Data.ID)

	got, err := c.Recurring.GetCustomer(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, got.Data.CreditCards, 1)

	card, err := c.Recurring.CreateCreditCard(ctx, models.RecurringCreditCard{
		CustomerID: "c-1",
		Name:       "Ana",
		Document:   "1020304050",
		Number:     "4242424242424242",
		ExpMonth:   1,
		ExpYear:    2030,
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", card.Data.Token)
	assert.Equal(t, "/payments-api/rest/v4.9/customers/c-1/creditCards", fake.last().path)
	assert.Equal(t, "VISA", fake.last().body["type"])
	assert.Equal(t, 2030.0, fake.last().body["expYear"])

	_, err = c.Recurring.GetCreditCard(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "/payments-api/rest/v4.9/creditCards/tok-1", fake.last().path)

	_, err = c.Recurring.DeleteCreditCard(ctx, "c-1", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "/payments-api/rest/v4.9/customers/c-1/creditCards/tok-1", fake.last().path)

	_, err = c.Recurring.DeleteCustomer(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, fake.last().method)

	_, err = c.Recurring.CreateCreditCard(ctx, models.RecurringCreditCard{CustomerID: "c-1", Name: "Ana", Number: "4242424242424242", ExpMonth: 13, ExpYear: 2030})
	var invalid *eligibility.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "expMonth", invalid.Field)
}

func TestRecurring_Subscriptions(t *testing.T) {
	c, fake := newRecurringTestClient(t)
	ctx := context.Background()
	immediate := true

	_, err := c.Recurring.CreateSubscription(ctx, models.Subscription{
		CustomerID:       "c-1",
		CreditCardToken:  "tok-1",
		PlanCode:         "gold",
		Quantity:         1,
		ImmediatePayment: &immediate,
		RecurringBillItems: []models.BillItem{
			{Description: "setup", Value: "5000", Currency: models.CurrencyCOP},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "/payments-api/rest/v4.9/subscriptions", fake.last().path)
	assert.Equal(t, true, fake.last().body["immediatePayment"])
	assert.Nil(t, fake.last().body["installments"])
	assert.Equal(t, "gold", fake.last().body["plan"].(map[string]any)["planCode"])
	items := fake.last().body["recurringBillItems"].([]any)
	require.Len(t, items, 1)
	values := items[0].(map[string]any)["additionalValues"].([]any)
	require.Len(t, values, 1)
	assert.Equal(t, "ITEM_VALUE", values[0].(map[string]any)["name"])

	_, err = c.Recurring.GetSubscription(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, fake.last().method)
	assert.Equal(t, "/payments-api/rest/v4.9/subscriptions/s-1", fake.last().path)

	_, err = c.Recurring.UpdateSubscription(ctx, "s-1", "tok-2")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, fake.last().method)
	assert.Equal(t, "tok-2", fake.last().body["creditCardToken"])

	_, err = c.Recurring.DeleteSubscription(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, fake.last().method)
}

func TestRecurring_AdditionalCharges(t *testing.T) {
	c, fake := newRecurringTestClient(t)
	ctx := context.Background()
	charge := models.AdditionalCharge{Description: "extra", Value: "1000", Tax: "160", Currency: models.CurrencyCOP}

	_, err := c.Recurring.CreateAdditionalCharge(ctx, "s-1", charge)
	require.NoError(t, err)
	assert.Equal(t, "/payments-api/rest/v4.9/subscriptions/s-1/recurringBillItems", fake.last().path)
	assert.Len(t, fake.last().body["additionalValues"], 2)

	_, err = c.Recurring.GetAdditionalCharge(ctx, "i-1")
	require.NoError(t, err)
	assert.Equal(t, "/payments-api/rest/v4.9/recurringBillItems/i-1", fake.last().path)

	list, err := c.Recurring.GetAdditionalChargesByDescription(ctx, "extra charge")
	require.NoError(t, err)
	assert.Len(t, list.Data.RecurringBillItemList, 2)
	assert.Equal(t, "description=extra+charge", fake.last().query)

	_, err = c.Recurring.GetAdditionalChargesBySubscription(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "subscriptionId=s-1", fake.last().query)

	_, err = c.Recurring.UpdateAdditionalCharge(ctx, "i-1", charge)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, fake.last().method)
	assert.Equal(t, "extra", fake.last().body["description"])

	_, err = c.Recurring.DeleteAdditionalCharge(ctx, "i-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, fake.last().method)

	_, err = c.Recurring.UpdateAdditionalCharge(ctx, "i-1", models.AdditionalCharge{Description: "extra", Value: "abc"})
	assert.ErrorIs(t, err, eligibility.ErrInvalidValue)
}

func TestRecurring_Bills(t *testing.T) {
	c, fake := newRecurringTestClient(t)
	ctx := context.Background()

	bills, err := c.Recurring.GetBillsByCustomer(ctx, models.BillQuery{CustomerID: "c-1"})
	require.NoError(t, err)
	require.Len(t, bills.Data.RecurringBillList, 1)
	assert.Equal(t, "20000", bills.Data.RecurringBillList[0].Amount.String())
	assert.Equal(t, "customerId=c-1", fake.last().query)

	begin := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = c.Recurring.GetBillsByCustomer(ctx, models.BillQuery{CustomerID: "c-1", DateBegin: begin, DateFinal: begin.AddDate(0, 1, 0)})
	require.NoError(t, err)
	assert.Equal(t, "customerId=c-1&dateBegin=2024-03-01&dateFinal=2024-04-01", fake.last().query)

	// A half-open range is ignored.
	_, err = c.Recurring.GetBillsByCustomer(ctx, models.BillQuery{CustomerID: "c-1", DateBegin: begin})
	require.NoError(t, err)
	assert.Equal(t, "customerId=c-1", fake.last().query)

	_, err = c.Recurring.GetBillsBySubscription(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "/payments-api/rest/v4.9/recurringBill", fake.last().path)
	assert.Equal(t, "subscriptionId=s-1", fake.last().query)
}

func TestRecurring_HTTPError(t *testing.T) {
	c, _ := newRecurringTestClient(t)

	_, err := c.Recurring.GetPlan(context.Background(), "missing")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}
