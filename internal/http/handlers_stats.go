package http

import (
	"net/http"

	"fishlog/internal/core"
	applog "fishlog/internal/log"
)

// BarRow is one bar; Width is a CSS percentage relative to the largest bar.
type BarRow struct {
	Label string
	Count int
	Width int
}

type BarChart struct {
	Title string
	Rows  []BarRow
}

// NewBarChart keeps the order of counts. Non-zero bars are at least 2% wide.
func NewBarChart(title string, counts []core.CategoryCount) BarChart {
	chart := BarChart{Title: title, Rows: make([]BarRow, 0, len(counts))}
	maxCount := 0
	for _, c := range counts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	for _, c := range counts {
		chart.Rows = append(chart.Rows, BarRow{Label: c.Value, Count: c.Count, Width: barWidth(c.Count, maxCount)})
	}
	return chart
}

func barWidth(count, maxCount int) int {
	if maxCount <= 0 || count <= 0 {
		return 0
	}
	width := (count*100 + maxCount/2) / maxCount
	if width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

type leaderboardRow struct {
	Rank    int
	Catcher string
	Count   int
	Width   int
}

type leaderboardPage struct {
	page
	Rows []leaderboardRow
}

// handleLeaderboard ranks catchers; tied counts share a rank.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ranked, err := s.catches.Leaderboard(r.Context())
	if err != nil {
		s.storeErrorResponse(r, applog.OpList, err).Write(w)
		return
	}

	data := leaderboardPage{page: page{Title: "Leaderboard", Active: "leaderboard"}}
	maxCount := 0
	if len(ranked) > 0 {
		maxCount = ranked[0].Count
	}
	rank := 0
	for i, c := range ranked {
		if i == 0 || c.Count != ranked[i-1].Count {
			rank = i + 1
		}
		data.Rows = append(data.Rows, leaderboardRow{
			Rank:    rank,
			Catcher: c.Value,
			Count:   c.Count,
			Width:   barWidth(c.Count, maxCount),
		})
	}
	s.pageResponse(r, http.StatusOK, "leaderboard.html", data).Write(w)
}
