package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/campaign"
	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
	pkgerrors "github.com/luizlenharo/crowdfundingBlockchain/pkg/errors"
	"github.com/luizlenharo/crowdfundingBlockchain/pkg/validator"
)

type DonationHandler struct {
	service   *campaign.Service
	validator *validator.Validator
	logger    Logger
}

func NewDonationHandler(service *campaign.Service, val *validator.Validator, log Logger) *DonationHandler {
	return &DonationHandler{service: service, validator: val, logger: log}
}

// List returns the full derived donation state.
func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.Stats(r.Context()))
}

// TopDonors returns donors ranked by total donated.
func (h *DonationHandler) TopDonors(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	h.respondJSON(w, http.StatusOK, h.service.TopDonors(r.Context(), limit))
}

// Donate processes a new donation. Validation failures map to 400, ledger
// failures to 500, and domain rejections to 200 with success false.
func (h *DonationHandler) Donate(w http.ResponseWriter, r *http.Request) {
	var req domain.DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStructured(&req); errs != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	req.DonorName = strings.TrimSpace(req.DonorName)

	resp, err := h.service.Donate(r.Context(), req.DonorName, req.Amount)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidDonation) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Donation failed", map[string]interface{}{
			"donor_name": req.DonorName,
			"error":      err.Error(),
		})
		h.respondError(w, http.StatusInternalServerError, "Failed to process donation")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *DonationHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *DonationHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
