package rankings

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"RevenueTracker/api/constants"
	"RevenueTracker/api/dash/entrypool"
	"RevenueTracker/api/utils"
	"RevenueTracker/internal/revenue"
)

// GoalBooks holds the per-dimension goal tables loaded at service start.
// Dimensions without a goal file simply report rankings without completion.
type GoalBooks struct {
	Partner     *revenue.GoalBook
	Manager     *revenue.GoalBook
	ServiceLine *revenue.GoalBook
}

// LoadGoalBooks reads the metas CSVs from the goals directory. A missing
// file is logged and skipped; the dashboard still renders.
func LoadGoalBooks(dir string) GoalBooks {
	books := GoalBooks{}
	books.Partner = loadBook(filepath.Join(dir, "metas_PPED.csv"), revenue.GoalSchema{
		Label: "Partner", Month: "Mes", ANSR: "ANSR Goal PPED", Hours: "Horas Goal PPED",
	})
	books.Manager = loadBook(filepath.Join(dir, "metas_Managers.csv"), revenue.GoalSchema{
		Label: "Manager", Month: "Mes", ANSR: "ANSR Goal Manager", Hours: "Horas Goal Manager",
	})
	books.ServiceLine = loadBook(filepath.Join(dir, "metas_SL.csv"), revenue.GoalSchema{
		Label: "SL", Month: "Mes", ANSR: "ANSR Goal SL", Hours: "Horas Goal SL",
	})
	return books
}

func loadBook(path string, schema revenue.GoalSchema) *revenue.GoalBook {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[Dash] goal table %s not loaded: %v", path, err)
		return nil
	}
	defer f.Close()
	book, err := revenue.LoadGoals(f, schema)
	if err != nil {
		log.Printf("[Dash] goal table %s not loaded: %v", path, err)
		return nil
	}
	return book
}

func (b GoalBooks) forKey(key revenue.GroupKey) *revenue.GoalBook {
	switch key {
	case revenue.ByPartner:
		return b.Partner
	case revenue.ByManager:
		return b.Manager
	case revenue.ByServiceLine:
		return b.ServiceLine
	}
	return nil
}

// Handler: GetRanking
// Ranks the resolved reporting date's rows by the given dimension, with
// top-5, the paginated full ranking and goal completion where a goal book
// exists.
func GetRanking(db *sql.DB, books GoalBooks, dimension string) http.HandlerFunc {
	key := revenue.GroupKey(dimension)
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

		full := revenue.RankBy(entries, key, books.forKey(key), date)
		top5 := revenue.Top5(full)

		params, err := utils.ExtractPagination(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
			return
		}
		params.SetPaginationStats(len(full))
		start, end := params.Bounds(len(full))
		page := full[start:end]

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":     true,
			"report_date": date.Format("2006-01-02"),
			"dimension":   dimension,
			"top5":        top5,
			"ranking":     page,
			"pagination":  params,
		})
	}
}
