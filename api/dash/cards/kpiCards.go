package cards

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"RevenueTracker/api/constants"
	"RevenueTracker/api/dash/entrypool"
	"RevenueTracker/internal/revenue"
)

// 1. KPI cards: FYTD/MTD synthetic ANSR, charged hours, RPH and margin for
// the resolved reporting date.
func GetKPICards(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := entrypool.ResolveDate(r, db)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
			return
		}
		entries, err := entrypool.LoadEntries(db, date)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
			return
		}
		if len(entries) == 0 {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": constants.ErrNoEntriesForDate})
			return
		}

		var fytdANSR, mtdANSR, fytdHours, mtdHours, fytdCost float64
		for i := range entries {
			fytdANSR += deref(entries[i].ANSRSintetico)
			mtdANSR += deref(entries[i].MTDANSRAmt)
			fytdHours += deref(entries[i].FYTDChargedHours)
			mtdHours += deref(entries[i].MTDChargedHours)
			fytdCost += deref(entries[i].FYTDDirectCost)
		}
		rph := 0.0
		if fytdHours != 0 {
			rph = fytdANSR / fytdHours
		}
		marginPct := 0.0
		if fytdANSR != 0 {
			marginPct = (fytdANSR - fytdCost) / fytdANSR * 100
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":        true,
			"report_date":    date.Format("2006-01-02"),
			"fytd_ansr":      fytdANSR,
			"mtd_ansr":       mtdANSR,
			"fytd_hours":     fytdHours,
			"mtd_hours":      mtdHours,
			"rph":            rph,
			"margin":         fytdANSR - fytdCost,
			"margin_pct":     marginPct,
			"entries":        len(entries),
			"periodo_fiscal": periodoFiscal(entries),
		})
	}
}

// 2. Currency-loss card: FYTD and MTD differential totals.
func GetDiferencialCard(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := entrypool.ResolveDate(r, db)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
			return
		}
		entries, err := entrypool.LoadEntries(db, date)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
			return
		}
		if len(entries) == 0 {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": constants.ErrNoEntriesForDate})
			return
		}

		var finalSum, mtdSum float64
		flagged := 0
		for i := range entries {
			finalSum += deref(entries[i].DiferencialFinal)
			mtdSum += deref(entries[i].DiferencialMTD)
			if entries[i].DuplicateEngagementID {
				flagged++
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":           true,
			"report_date":       date.Format("2006-01-02"),
			"diferencial_final": finalSum,
			"diferencial_mtd":   mtdSum,
			"duplicate_rows":    flagged,
		})
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func periodoFiscal(entries []revenue.EngagementRow) string {
	if len(entries) == 0 {
		return ""
	}
	return entries[0].PeriodoFiscal
}
