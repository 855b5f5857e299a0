package api

import (
	"net/http"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
)

// ReportsHandler serves the category ranking.
type ReportsHandler struct {
	Reports *service.Reports
}

type rankingResponse struct {
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Ranking   []model.CategoryRank `json:"ranking"`
}

// Rankings handles GET /api/rankings?startDate=&endDate=.
func (h *ReportsHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, rows, err := h.Reports.RankCategories(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, "rank categories", err)
		return
	}

	if rows == nil {
		rows = []model.CategoryRank{}
	}
	jsonResponse(w, http.StatusOK, rankingResponse{
		StartDate: db.FormatDate(rng.Start),
		EndDate:   db.FormatDate(rng.End),
		Ranking:   rows,
	})
}
