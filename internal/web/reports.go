package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/report"
)

type rankingPage struct {
	PageData
	StartDate string
	EndDate   string
	Ranked    bool
	Rows      []model.CategoryRank
	ExportURL string
}

// RankCategoriesPage handles GET /rank_categories.
func (s *Server) RankCategoriesPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "rank_categories.html", &rankingPage{PageData: PageData{Title: "Popular categories"}})
}

// RankCategoriesSubmit handles POST /rank_categories.
func (s *Server) RankCategoriesSubmit(w http.ResponseWriter, r *http.Request) {
	start, end := r.FormValue("startDate"), r.FormValue("endDate")

	rng, rows, err := s.Services.Reports.RankCategories(r.Context(), start, end)
	if err != nil {
		s.redirect(w, r, "/rank_categories", rankingFlash(err))
		return
	}

	data := &rankingPage{
		PageData:  PageData{Title: "Popular categories"},
		StartDate: db.FormatDate(rng.Start),
		EndDate:   db.FormatDate(rng.End),
		Ranked:    true,
		Rows:      rows,
		ExportURL: "/rank_categories/export?" + url.Values{
			"startDate": {db.FormatDate(rng.Start)},
			"endDate":   {db.FormatDate(rng.End)},
		}.Encode(),
	}
	if len(rows) == 0 {
		data.Flashes = append(data.Flashes, info("No orders were placed in the selected range."))
	}
	s.render(w, r, "rank_categories.html", data)
}

// RankCategoriesExport handles GET /rank_categories/export.
func (s *Server) RankCategoriesExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, rows, err := s.Services.Reports.RankCategories(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		s.redirect(w, r, "/rank_categories", rankingFlash(err))
		return
	}

	pdf, err := report.RankingPDF(report.Ranking{
		Start:       rng.Start,
		End:         rng.End,
		Rows:        rows,
		GeneratedBy: actor(r).Username,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		s.redirect(w, r, "/rank_categories", unexpected("render ranking pdf", err))
		return
	}

	name := "ranking-" + db.FormatDate(rng.Start) + "-" + db.FormatDate(rng.End) + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	if _, err := w.Write(pdf); err != nil {
		slog.Error("failed to write ranking pdf", "error", err)
	}
}

func rankingFlash(err error) Flash {
	switch {
	case errors.Is(err, model.ErrMissingRange):
		return danger("Error: Both start and end dates are required.")
	case errors.Is(err, model.ErrValidation):
		return danger("Error: %s", reason(err))
	default:
		return unexpected("rank categories", err)
	}
}
