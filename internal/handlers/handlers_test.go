package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/core/services"
	"github.com/SscSPs/general_ledger/internal/dto"
	"github.com/SscSPs/general_ledger/internal/handlers"
	"github.com/SscSPs/general_ledger/internal/platform/config"
	"github.com/SscSPs/general_ledger/internal/repositories/database/memory"
)

type LedgerHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	container, err := services.NewServiceContainer(context.Background(), &config.Config{}, memory.NewRepositoryProvider(), nil)
	s.Require().NoError(err)
	handlers.RegisterRoutes(s.router, container)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}

func (s *LedgerHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func postBody(date, debit, credit, amount string) gin.H {
	return gin.H{
		"date":        date,
		"description": "test entry",
		"lines": []gin.H{
			{"accountCode": debit, "amount": amount, "side": "DEBIT"},
			{"accountCode": credit, "amount": amount, "side": "CREDIT"},
		},
	}
}

func (s *LedgerHandlerTestSuite) post(date, debit, credit, amount string) dto.PostJournalResponse {
	w := s.do(http.MethodPost, "/api/v1/journals", postBody(date, debit, credit, amount))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PostJournalResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *LedgerHandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *LedgerHandlerTestSuite) TestPostAndGetJournal() {
	resp := s.post("2024-03-01", "1000", "4000", "125.50")
	s.Equal("JE-0001", resp.JournalNumber)
	s.Equal("POSTED", resp.Journal.Status)
	s.True(resp.Journal.TotalDebits.Equal(decimal.RequireFromString("125.50")))

	w := s.do(http.MethodGet, "/api/v1/journals/JE-0001", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var got dto.JournalResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal("2024-03-01", got.Date.Format(time.DateOnly))
	s.Len(got.Lines, 2)

	w = s.do(http.MethodGet, "/api/v1/journals/JE-0099", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *LedgerHandlerTestSuite) TestPostJournal_Errors() {
	w := s.do(http.MethodPost, "/api/v1/journals", gin.H{
		"date": "2024-03-01",
		"lines": []gin.H{
			{"accountCode": "1000", "amount": "500", "side": "DEBIT"},
			{"accountCode": "4000", "amount": "400", "side": "CREDIT"},
		},
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "balanced")

	w = s.do(http.MethodPost, "/api/v1/journals", gin.H{"date": "2024-03-01"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/journals", gin.H{
		"date": "03/01/2024",
		"lines": []gin.H{
			{"accountCode": "1000", "amount": "1", "side": "DEBIT"},
			{"accountCode": "4000", "amount": "1", "side": "CREDIT"},
		},
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *LedgerHandlerTestSuite) TestListJournals_Paginates() {
	for i := 0; i < 3; i++ {
		s.post("2024-03-01", "1000", "4000", "10")
	}

	w := s.do(http.MethodGet, "/api/v1/journals?limit=2", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var page dto.ListJournalsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	s.Len(page.Journals, 2)
	s.Require().NotNil(page.NextToken)

	w = s.do(http.MethodGet, "/api/v1/journals?limit=2&nextToken="+*page.NextToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var rest dto.ListJournalsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &rest))
	s.Require().Len(rest.Journals, 1)
	s.Equal("JE-0003", rest.Journals[0].JournalNumber)
	s.Nil(rest.NextToken)

	w = s.do(http.MethodGet, "/api/v1/journals?limit=abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *LedgerHandlerTestSuite) TestPeriodLockFlow() {
	w := s.do(http.MethodPost, "/api/v1/periods/2024/11/lock", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/journals", postBody("2024-11-15", "1000", "4000", "10"))
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "2024-11")

	s.post("2024-12-01", "1000", "4000", "10")

	w = s.do(http.MethodPost, "/api/v1/periods/2024/11/unlock", gin.H{"actor": "admin"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/periods/2024/11/unlock", gin.H{"actor": "admin", "reason": "correction"})
	s.Require().Equal(http.StatusOK, w.Code)
	var status dto.PeriodStatusResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &status))
	s.False(status.Locked)
	s.Equal("2024-11", status.Period)
	s.Require().Len(status.AuditLog, 2)
	s.Equal("UNLOCKED by admin: correction", status.AuditLog[1].Message)

	resp := s.post("2024-11-15", "1000", "4000", "10")
	s.Equal("JE-0002", resp.JournalNumber)

	w = s.do(http.MethodGet, "/api/v1/periods/2024/13", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/v1/periods/twenty/1", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *LedgerHandlerTestSuite) TestReverseAndTrialBalance() {
	s.post("2024-03-01", "1000", "4000", "1000")
	s.post("2024-03-05", "5000", "1000", "200")

	w := s.do(http.MethodGet, "/api/v1/reports/trial-balance?to=2024-12-31", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var tb dto.TrialBalanceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tb))
	s.True(tb.Balanced)
	s.Require().Len(tb.Rows, 3)
	s.Equal("ASSET", tb.Rows[0].Category)
	s.True(tb.Rows[0].Debit.Equal(decimal.NewFromInt(800)))

	w = s.do(http.MethodPost, "/api/v1/journals/JE-0002/reverse", gin.H{"date": "2024-03-20", "reason": "wrong account"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/accounts/1000/balance?asOf=2024-12-31", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var bal dto.AccountBalanceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &bal))
	s.Equal("1000.00", bal.Balance.StringFixed(2))
	s.Equal("ASSET", bal.Category)

	w = s.do(http.MethodGet, "/api/v1/reports/trial-balance?from=2024-04-01&to=2024-03-01", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/v1/reports/trial-balance?to=yesterday", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *LedgerHandlerTestSuite) TestOpeningBalanceAndClosing() {
	w := s.do(http.MethodPut, "/api/v1/opening-balances/1000", gin.H{"amount": "5000", "asOfDate": "2024-01-01"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.post("2024-03-01", "1000", "4000", "700")

	w = s.do(http.MethodGet, "/api/v1/opening-balances", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"accountCode":"1000"`)

	w = s.do(http.MethodPost, "/api/v1/closings", gin.H{"date": "2024-12-31", "retainedEarningsAccount": "3100"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var closing dto.ClosingEntriesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &closing))
	s.Len(closing.Journals, 1)

	w = s.do(http.MethodPost, "/api/v1/adjustments", gin.H{
		"date": "2024-12-31", "description": "accrual",
		"debitAccount": "5000", "creditAccount": "2000", "amount": "50",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "Adjusting: accrual")
}

func (s *LedgerHandlerTestSuite) TestRecurringFlow() {
	w := s.do(http.MethodPost, "/api/v1/recurring", gin.H{
		"description": "rent",
		"frequency":   "MONTHLY",
		"startDate":   "2024-01-31",
		"endDate":     "2024-12-31",
		"lines": []gin.H{
			{"accountCode": "5000", "amount": "1500", "side": "DEBIT"},
			{"accountCode": "1000", "amount": "1500", "side": "CREDIT"},
		},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "REC-1")

	w = s.do(http.MethodPost, "/api/v1/recurring/process", gin.H{"from": "2024-01-01", "to": "2024-03-31"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var run dto.ProcessRecurringResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &run))
	s.Equal(3, run.Generated)
	s.Equal("2024-02-29", run.Journals[1].Date.Format(time.DateOnly))

	w = s.do(http.MethodGet, "/api/v1/recurring/REC-1", nil)
	s.Equal(http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/recurring/REC-7", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

// --- Mock TrialBalanceSvc ---
type MockTrialBalanceService struct {
	mock.Mock
}

var _ portssvc.TrialBalanceSvc = (*MockTrialBalanceService)(nil)

func (m *MockTrialBalanceService) GenerateTrialBalance(ctx context.Context, asOf time.Time) (domain.TrialBalance, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(domain.TrialBalance), args.Error(1)
}

func (m *MockTrialBalanceService) GenerateTrialBalanceBetween(ctx context.Context, from, to time.Time) (domain.TrialBalance, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(domain.TrialBalance), args.Error(1)
}

func (m *MockTrialBalanceService) GetBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountCode, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTrialBalanceService) GetDisplayBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountCode, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTrialBalanceService) GenerateReport(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}

func TestTrialBalance_StoreFailureIsHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tb := new(MockTrialBalanceService)
	tb.On("GenerateReport", mock.Anything, time.Time{}, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)).
		Return(nil, errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	router := gin.New()
	handlers.RegisterRoutes(router, &portssvc.ServiceContainer{TrialBalance: tb})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/trial-balance?to=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to generate trial balance", body["error"])
	tb.AssertExpectations(t)
}

func (s *LedgerHandlerTestSuite) TestPostJournal_NonPositiveAmountFailsBinding() {
	w := s.do(http.MethodPost, "/api/v1/journals", postBody("2024-03-01", "1000", "4000", "-5"))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Invalid request format")

	w = s.do(http.MethodGet, "/api/v1/journals", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"journals":[]`)
}
