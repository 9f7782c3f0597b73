package handler

import (
	"encoding/json"
	"net/http"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/campaign"
)

type CampaignHandler struct {
	service *campaign.Service
	logger  Logger
}

func NewCampaignHandler(service *campaign.Service, log Logger) *CampaignHandler {
	return &CampaignHandler{service: service, logger: log}
}

// GetInfo returns the public campaign summary.
func (h *CampaignHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.CampaignInfo(r.Context()))
}

func (h *CampaignHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
