package revenue

import (
	"sort"
	"time"
)

// GroupKey selects the dimension a ranking is built over.
type GroupKey string

const (
	ByPartner        GroupKey = "partner"
	ByManager        GroupKey = "manager"
	ByServiceLine    GroupKey = "service_line"
	BySubServiceLine GroupKey = "sub_service_line"
)

// Completion color brackets for the dashboard progress bars. Lower bounds
// are inclusive.
const (
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorGreen  = "green"
)

// GroupMetrics is one ranking entry: aggregated synthetic revenue, hours,
// derived rates and goal completion for a group label.
type GroupMetrics struct {
	Label         string   `json:"label"`
	FYTDANSR      float64  `json:"fytd_ansr"`
	MTDANSR       float64  `json:"mtd_ansr"`
	FYTDHours     float64  `json:"fytd_hours"`
	MTDHours      float64  `json:"mtd_hours"`
	FYTDCost      float64  `json:"fytd_direct_cost"`
	Margin        float64  `json:"margin"`
	RPH           float64  `json:"rph"`
	Goal          float64  `json:"goal"`
	YearlyGoal    float64  `json:"yearly_goal,omitempty"`
	CompletionPct *float64 `json:"completion_pct"`
	Color         string   `json:"color,omitempty"`
}

// RankBy groups reconciled rows by the given key and returns entries ordered
// by FYTD synthetic ANSR, descending. goals may be nil when no goal book
// applies to the dimension; completion is then left unset.
func RankBy(rows []EngagementRow, key GroupKey, goals *GoalBook, date time.Time) []GroupMetrics {
	grouped := make(map[string]*GroupMetrics)
	order := []string{}
	for i := range rows {
		label := groupLabel(&rows[i], key)
		if label == "" {
			continue
		}
		g, ok := grouped[label]
		if !ok {
			g = &GroupMetrics{Label: label}
			grouped[label] = g
			order = append(order, label)
		}
		g.FYTDANSR += fval(rows[i].ANSRSintetico)
		g.MTDANSR += fval(rows[i].MTDANSRAmt)
		g.FYTDHours += fval(rows[i].FYTDChargedHours)
		g.MTDHours += fval(rows[i].MTDChargedHours)
		g.FYTDCost += fval(rows[i].FYTDDirectCost)
	}

	out := make([]GroupMetrics, 0, len(order))
	for _, label := range order {
		g := grouped[label]
		g.Margin = g.FYTDANSR - g.FYTDCost
		if g.FYTDHours != 0 {
			g.RPH = g.FYTDANSR / g.FYTDHours
		}
		if goals != nil {
			cumulative := goals.CumulativeThrough(label, date)
			g.Goal = cumulative.ANSR
			if yearly, ok := goals.Yearly(label); ok {
				g.YearlyGoal = yearly.ANSR
			}
			if cumulative.ANSR != 0 {
				pct := g.FYTDANSR / cumulative.ANSR * 100
				g.CompletionPct = &pct
				g.Color = CompletionColor(pct)
			}
		}
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FYTDANSR > out[j].FYTDANSR })
	return out
}

// Top5 returns the leading five entries of a ranking.
func Top5(ranking []GroupMetrics) []GroupMetrics {
	if len(ranking) <= 5 {
		return ranking
	}
	return ranking[:5]
}

// CompletionColor classifies a goal-completion percentage: below 50 red,
// 50 to 94.99 yellow, 95 and above green.
func CompletionColor(pct float64) string {
	switch {
	case pct >= 95:
		return ColorGreen
	case pct >= 50:
		return ColorYellow
	default:
		return ColorRed
	}
}

func groupLabel(row *EngagementRow, key GroupKey) string {
	switch key {
	case ByPartner:
		return row.Partner
	case ByManager:
		return row.Manager
	case ByServiceLine:
		return row.ServiceLine
	case BySubServiceLine:
		return row.SubServiceLine
	}
	return ""
}
