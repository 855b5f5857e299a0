package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/welcomehome/internal/model"
)

func TestRankingPDF(t *testing.T) {
	data, err := RankingPDF(Ranking{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Rows: []model.CategoryRank{
			{MainCategory: "Kitchen", SubCategory: "Dishes", OrderCount: 4},
			{MainCategory: "Furniture", SubCategory: "Chair", OrderCount: 2},
		},
		GeneratedBy: "sam",
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output is not a PDF")
}

func TestRankingPDFEmpty(t *testing.T) {
	data, err := RankingPDF(Ranking{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
