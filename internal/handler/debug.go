package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/campaign"
	"github.com/luizlenharo/crowdfundingBlockchain/internal/memo"
)

type DebugHandler struct {
	service *campaign.Service
	network string
	logger  Logger
}

func NewDebugHandler(service *campaign.Service, network string, log Logger) *DebugHandler {
	return &DebugHandler{service: service, network: network, logger: log}
}

// Memo encodes a donation memo and reports whether it fits the byte budget.
func (h *DebugHandler) Memo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	donorName := vars["donor_name"]

	amount, err := decimal.NewFromString(vars["amount"])
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	m := memo.Encode(donorName, amount)

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"donor_name": donorName,
		"amount":     amount,
		"memo":       m,
		"memo_bytes": len(m),
		"is_valid":   len(m) <= memo.MaxBytes,
		"max_bytes":  memo.MaxBytes,
	})
}

// Account reports both configured ledger accounts and the campaign config.
func (h *DebugHandler) Account(w http.ResponseWriter, r *http.Request) {
	campaignAcct, donorAcct := h.service.AccountDebugInfo(r.Context())

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"campaign_account": campaignAcct,
		"donor_account":    donorAcct,
		"campaign_config": map[string]interface{}{
			"title":   h.service.Title(),
			"goal":    h.service.Goal(),
			"network": h.network,
		},
	})
}

var cannedDonations = []struct {
	name   string
	amount decimal.Decimal
}{
	{"Ana Silva", decimal.RequireFromString("5.5")},
	{"Carlos Santos", decimal.RequireFromString("12")},
	{"Maria Oliveira", decimal.RequireFromString("8.75")},
	{"Joao Pedro", decimal.RequireFromString("15.25")},
	{"Lucia Costa", decimal.RequireFromString("20")},
}

// Simulate submits up to 5 canned donations through the normal submission
// path, stopping early once the campaign closes.
func (h *DebugHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(mux.Vars(r)["count"])
	if err != nil || count < 1 {
		h.respondError(w, http.StatusBadRequest, "Invalid count")
		return
	}
	if count > len(cannedDonations) {
		h.respondError(w, http.StatusBadRequest, "Maximum 5 simulated donations")
		return
	}

	results := make([]map[string]interface{}, 0, count)
	succeeded := 0

	for i := 0; i < count; i++ {
		donation := cannedDonations[i]

		stats := h.service.Stats(r.Context())
		if !stats.IsActive {
			break
		}

		resp, err := h.service.Donate(r.Context(), donation.name, donation.amount)
		if err != nil {
			results = append(results, map[string]interface{}{
				"donor":   donation.name,
				"amount":  donation.amount,
				"error":   err.Error(),
				"success": false,
			})
			continue
		}

		results = append(results, map[string]interface{}{
			"donor":   donation.name,
			"amount":  donation.amount,
			"hash":    resp.TransactionHash,
			"success": resp.Success,
		})
		if resp.Success {
			succeeded++
		}

		// Testnet pacing between sequential submissions.
		if i < count-1 {
			time.Sleep(time.Second)
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"simulated_donations": results,
		"message":             strconv.Itoa(succeeded) + " donations simulated successfully",
	})
}

func (h *DebugHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *DebugHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
