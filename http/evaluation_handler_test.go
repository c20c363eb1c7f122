package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"loan-evaluator/domain"
	"loan-evaluator/repository"
	"loan-evaluator/service"
)

type stubCompleter struct {
	content string
	err     error
	prompts []string
}

func (s *stubCompleter) Complete(ctx context.Context, req service.CompletionRequest) (service.CompletionResponse, error) {
	if s.err != nil {
		return service.CompletionResponse{}, s.err
	}
	s.prompts = append(s.prompts, req.Messages[0].Content)
	return service.CompletionResponse{
		ID:      "cmpl-http",
		Choices: []service.Choice{{Message: service.Message{Role: "assistant", Content: s.content}}},
	}, nil
}

type testEnv struct {
	completer *stubCompleter
	cache     *repository.MemoryCache
	audit     *repository.EvaluationRepositoryMemory
	handler   *EvaluationHandler
}

func newTestEnv(content string) *testEnv {
	completer := &stubCompleter{content: content}
	audit := repository.NewEvaluationRepositoryMemory(100)
	cache := repository.NewMemoryCache()
	svc := service.NewEvaluationService(completer, audit, zap.NewNop(), service.DefaultSampling())
	return &testEnv{
		completer: completer,
		cache:     cache,
		audit:     audit,
		handler:   NewEvaluationHandler(svc, cache, audit, zap.NewNop()),
	}
}

func postEvaluate(h *EvaluationHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/loan/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Evaluate(w, req)
	return w
}

func sampleBody(t *testing.T, mutate func(*domain.LoanParameters)) string {
	t.Helper()
	params := domain.SampleParameters()
	if mutate != nil {
		mutate(&params)
	}
	data, err := json.Marshal(params)
	require.NoError(t, err)
	return string(data)
}

func TestEvaluateHandler_OK(t *testing.T) {
	env := newTestEnv(`{"status":"Approved","reason":"Meets every rule."}`)

	w := postEvaluate(env.handler, sampleBody(t, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got evaluationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.StatusApproved, got.Decision.Status)
	assert.Equal(t, "Meets every rule.", got.Decision.Reason)
	assert.Equal(t, 80, got.LoanRatio)
	assert.Equal(t, "1,918.56", got.Display.MonthlyPayment)

	cached, ok, err := env.cache.Get("latest:unbiased")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, w.Body.String(), cached)
}

func TestEvaluateHandler_FormStyleBody(t *testing.T) {
	env := newTestEnv(`{"status":"Denied","reason":""}`)

	body := `{"homeValue":"400000","homeZipCode":"10200","loanAmount":"320000","interestRate":"6",
		"annualIncome":"120000","creditScore":"700","bankruptcies":"yes","lenderLastName":"Morales","mode":"bad"}`
	w := postEvaluate(env.handler, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, env.completer.prompts, 1)
	assert.Contains(t, env.completer.prompts[0], "Morales")
	assert.Contains(t, env.completer.prompts[0], "has had bankruptcies")

	var got evaluationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.ModeBiased, got.Mode)
	assert.Equal(t, "You will receive a letter within 30 days explaining why the loan was denied.", got.Decision.UIReason)
}

func TestEvaluateHandler_DefaultsToUnbiased(t *testing.T) {
	env := newTestEnv(`{"status":"Approved","reason":"ok"}`)

	w := postEvaluate(env.handler, sampleBody(t, func(p *domain.LoanParameters) { p.Mode = "" }))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, env.completer.prompts[0], "Morales")
}

func TestEvaluateHandler_MissingFields(t *testing.T) {
	env := newTestEnv(`{"status":"Approved","reason":"ok"}`)

	w := postEvaluate(env.handler, sampleBody(t, func(p *domain.LoanParameters) {
		p.Mode = domain.ModeBiased
		p.LenderLastName = ""
		p.CreditScore = ""
	}))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Please fill all the required fields", got.Error)
	assert.Equal(t, []string{"creditScore", "lenderLastName"}, got.Fields)
	assert.Empty(t, env.completer.prompts)

	_, ok, _ := env.cache.Get("latest:biased")
	assert.False(t, ok)
}

func TestEvaluateHandler_UpstreamFailures(t *testing.T) {
	for name, completer := range map[string]*stubCompleter{
		"transport": {err: errors.New("dial tcp: connection refused")},
		"format":    {content: "I approve this loan."},
	} {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv("")
			env.completer.err = completer.err
			env.completer.content = completer.content

			w := postEvaluate(env.handler, sampleBody(t, nil))
			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.NotContains(t, w.Body.String(), "connection refused")

			_, ok, _ := env.cache.Get("latest:unbiased")
			assert.False(t, ok)
		})
	}
}

func TestEvaluateHandler_RequestChecks(t *testing.T) {
	env := newTestEnv(`{"status":"Approved","reason":"ok"}`)

	req := httptest.NewRequest(http.MethodGet, "/loan/evaluate", nil)
	w := httptest.NewRecorder()
	env.handler.Evaluate(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/loan/evaluate", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "text/plain")
	w = httptest.NewRecorder()
	env.handler.Evaluate(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = postEvaluate(env.handler, `{"mode": "neutral"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postEvaluate(env.handler, `{"bankruptcies": "maybe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLatestHandler(t *testing.T) {
	env := newTestEnv(`{"status":"Approved","reason":"ok"}`)

	get := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/loan/evaluations/latest"+query, nil)
		w := httptest.NewRecorder()
		env.handler.Latest(w, req)
		return w
	}

	assert.Equal(t, http.StatusNotFound, get("").Code)
	assert.Equal(t, http.StatusBadRequest, get("?mode=neutral").Code)

	first := postEvaluate(env.handler, sampleBody(t, nil))
	require.Equal(t, http.StatusOK, first.Code)

	w := get("?mode=unbiased")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, first.Body.String(), w.Body.String())
	assert.Equal(t, http.StatusNotFound, get("?mode=biased").Code)
}

type unavailableCache struct{}

func (unavailableCache) Get(string) (string, bool, error) {
	return "", false, errors.New("dial tcp 127.0.0.1:6379: connection refused")
}

func (unavailableCache) Set(string, string) error { return errors.New("connection refused") }

func TestLatestHandler_CacheUnavailable(t *testing.T) {
	env := newTestEnv(`{"status":"Approved","reason":"ok"}`)
	env.handler.cache = unavailableCache{}

	req := httptest.NewRequest(http.MethodGet, "/loan/evaluations/latest?mode=unbiased", nil)
	w := httptest.NewRecorder()
	env.handler.Latest(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestEvaluateHandler_NonFiniteNumbers(t *testing.T) {
	env := newTestEnv(`{"status":"Approved","reason":"ok"}`)

	for _, mutate := range []func(*domain.LoanParameters){
		func(p *domain.LoanParameters) { p.InterestRate = "NaN" },
		func(p *domain.LoanParameters) { p.HomeValue = "Inf" },
		func(p *domain.LoanParameters) { p.AnnualIncome = "1e-300" },
		func(p *domain.LoanParameters) { p.CreditScore = "-Inf" },
	} {
		w := postEvaluate(env.handler, sampleBody(t, mutate))
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	}
	assert.Empty(t, env.completer.prompts)
}

func TestHistoryHandler(t *testing.T) {
	env := newTestEnv(`{"status":"Approved","reason":"ok"}`)

	postEvaluate(env.handler, sampleBody(t, nil))
	postEvaluate(env.handler, sampleBody(t, func(p *domain.LoanParameters) { p.HomeValue = "" }))

	req := httptest.NewRequest(http.MethodGet, "/loan/evaluations?limit=5", nil)
	w := httptest.NewRecorder()
	env.handler.History(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var records []domain.AuditRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, domain.OutcomeRejected, records[0].Outcome)
	assert.Equal(t, domain.OutcomeDecided, records[1].Outcome)

	req = httptest.NewRequest(http.MethodGet, "/loan/evaluations?limit=abc", nil)
	w = httptest.NewRecorder()
	env.handler.History(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSampleHandler(t *testing.T) {
	env := newTestEnv("")

	req := httptest.NewRequest(http.MethodGet, "/loan/sample", nil)
	w := httptest.NewRecorder()
	env.handler.Sample(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var params domain.LoanParameters
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &params))
	assert.Equal(t, domain.SampleParameters(), params)
}
