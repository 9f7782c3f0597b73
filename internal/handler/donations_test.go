package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/campaign"
	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
	"github.com/luizlenharo/crowdfundingBlockchain/pkg/logger"
	"github.com/luizlenharo/crowdfundingBlockchain/pkg/validator"
)

// stubLedger serves canned events; submissions return a fixed hash.
type stubLedger struct {
	events []domain.DonationEvent
	err    error
}

func (s *stubLedger) FetchDonationEvents(ctx context.Context) ([]domain.DonationEvent, error) {
	return s.events, s.err
}

func (s *stubLedger) SubmitDonation(ctx context.Context, amount decimal.Decimal, memoText string) (string, error) {
	return "abcdef1234567890", nil
}

func (s *stubLedger) AccountInfo(ctx context.Context, accountID string) (*domain.AccountInfo, error) {
	return &domain.AccountInfo{PublicKey: accountID, Balance: "100.0000000", Sequence: 1}, nil
}

func (s *stubLedger) CampaignAddress() string { return "GCAMPAIGN" }
func (s *stubLedger) DonorAddress() string    { return "GDONOR" }

func newTestRouter(ledger campaign.Ledger) *mux.Router {
	svc := campaign.NewService(ledger, "Test Campaign", "desc", decimal.NewFromInt(100), logger.NewNop())
	val := validator.New()

	campaignHandler := NewCampaignHandler(svc, logger.NewNop())
	donationHandler := NewDonationHandler(svc, val, logger.NewNop())
	debugHandler := NewDebugHandler(svc, "testnet", logger.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/campaign/info", campaignHandler.GetInfo).Methods("GET")
	r.HandleFunc("/donations", donationHandler.List).Methods("GET")
	r.HandleFunc("/donations", donationHandler.Donate).Methods("POST")
	r.HandleFunc("/donations/top", donationHandler.TopDonors).Methods("GET")
	r.HandleFunc("/debug/memo/{donor_name}/{amount}", debugHandler.Memo).Methods("GET")
	r.HandleFunc("/debug/account", debugHandler.Account).Methods("GET")
	return r
}

func TestGetCampaignInfo(t *testing.T) {
	router := newTestRouter(&stubLedger{events: []domain.DonationEvent{
		{DonorName: "Ana", Amount: decimal.NewFromInt(40), Timestamp: "2024-01-01T10:00:00Z"},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/campaign/info", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var info domain.CampaignInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "Test Campaign", info.Title)
	assert.True(t, info.TotalRaised.Equal(decimal.NewFromInt(40)))
	assert.True(t, info.IsActive)
}

func TestListDonations(t *testing.T) {
	router := newTestRouter(&stubLedger{events: []domain.DonationEvent{
		{DonorName: "Ana", Amount: decimal.NewFromInt(10), Timestamp: "2024-01-01T10:00:00Z"},
		{DonorName: "Bob", Amount: decimal.NewFromInt(5), Timestamp: "2024-01-02T10:00:00Z"},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/donations", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.CampaignStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.DonorsCount)
	assert.Len(t, stats.Donations, 2)
}

func TestListDonations_DegradesOnLedgerFailure(t *testing.T) {
	router := newTestRouter(&stubLedger{err: assert.AnError})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/donations", nil))

	// Read path stays available with a zero snapshot.
	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.CampaignStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.True(t, stats.TotalRaised.IsZero())
	assert.True(t, stats.IsActive)
}

func TestTopDonorsLimit(t *testing.T) {
	router := newTestRouter(&stubLedger{events: []domain.DonationEvent{
		{DonorName: "Ana", Amount: decimal.NewFromInt(10), Timestamp: "2024-01-01T10:00:00Z"},
		{DonorName: "Bob", Amount: decimal.NewFromInt(20), Timestamp: "2024-01-02T10:00:00Z"},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/donations/top?limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.TopDonorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.TopDonors, 1)
	assert.Equal(t, "Bob", resp.TopDonors[0].DonorName)
	assert.Equal(t, 2, resp.TotalUniqueDonors)
}

func TestDonate_Success(t *testing.T) {
	router := newTestRouter(&stubLedger{})

	body := strings.NewReader(`{"donor_name": "Bob Stone", "amount": 5}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/donations", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.DonationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "abcdef1234567890", resp.TransactionHash)
}

func TestDonate_InvalidBody(t *testing.T) {
	router := newTestRouter(&stubLedger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/donations", strings.NewReader("not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDonate_MissingFields(t *testing.T) {
	router := newTestRouter(&stubLedger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/donations", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDonate_NameTooShort(t *testing.T) {
	router := newTestRouter(&stubLedger{})

	body := strings.NewReader(`{"donor_name": "A", "amount": 5}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/donations", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 2 characters")
}

func TestDonate_ClosedCampaignIsDomainRejection(t *testing.T) {
	router := newTestRouter(&stubLedger{events: []domain.DonationEvent{
		{DonorName: "Ana", Amount: decimal.NewFromInt(100), Timestamp: "2024-01-01T10:00:00Z"},
	}})

	body := strings.NewReader(`{"donor_name": "Bob Stone", "amount": 5}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/donations", body))

	// Domain rejection is a successful response carrying success false.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.DonationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.TransactionHash)
}

func TestDebugMemo(t *testing.T) {
	router := newTestRouter(&stubLedger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/debug/memo/Ana%20Silva/5.5", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ana Silva:5.5", resp["memo"])
	assert.Equal(t, true, resp["is_valid"])
	assert.Equal(t, float64(13), resp["memo_bytes"])
}

func TestDebugMemo_InvalidAmount(t *testing.T) {
	router := newTestRouter(&stubLedger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/debug/memo/Ana/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDebugAccount(t *testing.T) {
	router := newTestRouter(&stubLedger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/debug/account", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "campaign_account")
	assert.Contains(t, resp, "donor_account")

	cfg, ok := resp["campaign_config"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "testnet", cfg["network"])
}
