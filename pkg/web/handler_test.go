package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/goleak"

	"github.com/goliatone/go-eventforms/pkg/actions"
	"github.com/goliatone/go-eventforms/pkg/pages"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
	"github.com/goliatone/go-eventforms/pkg/testsupport"
	"github.com/goliatone/go-eventforms/pkg/web"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type decliningGateway struct{}

func (decliningGateway) Charge(context.Context, actions.Charge) (actions.Receipt, error) {
	return actions.Receipt{}, errors.New("card declined")
}

func newRouter(t *testing.T, opts ...web.Option) http.Handler {
	t.Helper()
	base := []web.Option{web.WithMountOptions(
		pages.WithClock(testsupport.FakeClock()),
		pages.WithPaymentDelay(0),
	)}
	h, err := web.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h.Router()
}

func postForm(router http.Handler, route string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, route, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validBooking() url.Values {
	return url.Values{
		"ticketType": {"Student"},
		"quantity":   {"3"},
		"cardNumber": {"4242424242424242"},
		"expiryDate": {"12/27"},
		"cvv":        {"123"},
	}
}

func TestGetRendersPages(t *testing.T) {
	router := newRouter(t)

	for route, want := range map[string]string{
		"/":              "Welcome to the Event Management Platform",
		"/events/book":   `<form id="book-ticket"`,
		"/events/create": `<form id="create-event"`,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, route, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d", route, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("GET %s: content type %q", route, ct)
		}
		testsupport.AssertContains(t, rec.Body.String(), want)
	}
}

func TestPostInvalidBookingRendersInlineErrors(t *testing.T) {
	router := newRouter(t)
	values := validBooking()
	values.Set("cardNumber", "4242")

	rec := postForm(router, "/events/book", values)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	testsupport.AssertContains(t, rec.Body.String(),
		"Card number must be 16 digits",
		`value="3"`,
	)
	testsupport.AssertNotContains(t, rec.Body.String(), "Ticket booked successfully")
}

func TestPostValidBookingRedirectsWithNotice(t *testing.T) {
	router := newRouter(t)

	rec := postForm(router, "/events/book", validBooking())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != web.NoticeCookie {
		t.Fatalf("expected a notice cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	next := httptest.NewRecorder()
	router.ServeHTTP(next, req)
	testsupport.AssertContains(t, next.Body.String(),
		"<strong>Ticket booked successfully</strong>",
		"You have booked 3 Student ticket(s).",
	)

	again := httptest.NewRecorder()
	router.ServeHTTP(again, httptest.NewRequest(http.MethodGet, "/", nil))
	testsupport.AssertNotContains(t, again.Body.String(), "Ticket booked successfully")
}

func TestPostDeclinedBookingShowsFailure(t *testing.T) {
	router := newRouter(t, web.WithMountOptions(pages.WithGateway(decliningGateway{})))

	rec := postForm(router, "/events/book", validBooking())
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	testsupport.AssertContains(t, rec.Body.String(),
		`toast--error`,
		"Payment failed. Please try again.",
	)
}

func TestPostCreationKeepsTimeOfDayAcrossRerender(t *testing.T) {
	router := newRouter(t)
	values := url.Values{
		"name":        {"Launch"},
		"date":        {"2026-10-16T18:00"},
		"description": {"Kick-off"},
	}

	rec := postForm(router, "/events/create", values)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	testsupport.AssertContains(t, rec.Body.String(),
		`type="datetime-local"`,
		`value="2026-10-16T18:00"`,
		"Location is required",
	)

	values.Set("location", "Berlin")
	rec = postForm(router, "/events/create", values)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 on resubmit, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPostJSONReturnsResultShapes(t *testing.T) {
	router := newRouter(t)

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/events/create", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := send(`{"name":"Launch","date":"2026-10-14"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var failed struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &failed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var fields []string
	for _, fe := range failed.Errors {
		fields = append(fields, fe.Field)
	}
	if diff := cmp.Diff([]string{"date", "location", "description"}, fields); diff != "" {
		t.Fatalf("failing fields mismatch (-want +got):\n%s", diff)
	}

	rec = send(`{"name":"Launch","date":"2026-11-02","location":"Berlin","description":"Kick-off"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var ok map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &ok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ok["status"] != pipeline.StatusSuccess.String() || ok["message"] != "Launch on Mon Nov 02 2026" || ok["redirect"] != "/events" {
		t.Fatalf("unexpected result: %v", ok)
	}
	if ok["id"] == "" {
		t.Fatal("expected a submission id")
	}
}

func TestPostRejectsMalformedJSON(t *testing.T) {
	router := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/events/book", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWelcomeDoesNotAcceptPosts(t *testing.T) {
	router := newRouter(t)
	rec := postForm(router, "/", url.Values{})
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := pipeline.NewMetrics(reg)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	router := newRouter(t,
		web.WithMountOptions(pages.WithPipelineOptions(pipeline.WithMetrics(metrics))),
		web.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	postForm(router, "/events/book", url.Values{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	testsupport.AssertContains(t, rec.Body.String(),
		`eventforms_submissions_total{form="book-ticket",outcome="validation_failed"} 1`,
	)
}
