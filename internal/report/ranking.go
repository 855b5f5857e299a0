// Package report renders the category ranking as a PDF.
package report

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/erazemk/welcomehome/internal/model"
)

var (
	colorAccent = &props.Color{Red: 31, Green: 97, Blue: 141}
	colorMuted  = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// Ranking holds what goes into a ranking PDF.
type Ranking struct {
	Start       time.Time
	End         time.Time
	Rows        []model.CategoryRank
	GeneratedBy string
	GeneratedAt time.Time
}

// RankingPDF renders r and returns the document bytes.
func RankingPDF(r Ranking) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Category ranking", true).
		WithAuthor("WelcomeHome", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.5}))
	m.AddRows(headerRow())
	if len(r.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No orders in this period.", props.Text{Top: 2, Color: colorMuted}),
		)))
	}
	for i, rank := range r.Rows {
		m.AddRows(rankRow(i+1, rank))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorMuted, Thickness: 0.2}))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating ranking pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(r Ranking) core.Row {
	period := r.Start.Format("2006-01-02") + " to " + r.End.Format("2006-01-02")
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Most popular categories", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorAccent, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(period, props.Text{Size: 9, Align: align.Right, Top: 3, Color: colorMuted}),
		),
	)
}

func headerRow() core.Row {
	bold := props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}
	right := bold
	right.Align = align.Right
	return row.New(8).Add(
		col.New(1).Add(text.New("#", bold)),
		col.New(5).Add(text.New("Main category", bold)),
		col.New(4).Add(text.New("Sub category", bold)),
		col.New(2).Add(text.New("Items ordered", right)),
	)
}

func rankRow(pos int, rank model.CategoryRank) core.Row {
	plain := props.Text{Size: 10, Top: 1}
	right := plain
	right.Align = align.Right
	return row.New(7).Add(
		col.New(1).Add(text.New(strconv.Itoa(pos), plain)),
		col.New(5).Add(text.New(rank.MainCategory, plain)),
		col.New(4).Add(text.New(rank.SubCategory, plain)),
		col.New(2).Add(text.New(strconv.Itoa(rank.OrderCount), right)),
	)
}

func footerRow(r Ranking) core.Row {
	msg := "Generated " + r.GeneratedAt.Format("2006-01-02 15:04")
	if r.GeneratedBy != "" {
		msg += " by " + r.GeneratedBy
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 2, Color: colorMuted}),
	))
}
