package dash

import (
	"database/sql"
	"log"
	"net/http"

	"RevenueTracker/api/dash/cards"
	"RevenueTracker/api/dash/rankings"
	"RevenueTracker/internal/config"
)

func StartDashService(db *sql.DB, cfg map[string]interface{}) {
	goalsDir := config.DefaultGoalsDir
	if cfg != nil {
		if v, ok := cfg["goals_dir"].(string); ok && v != "" {
			goalsDir = v
		}
	}
	books := rankings.LoadGoalBooks(goalsDir)

	mux := http.NewServeMux()
	mux.HandleFunc("/dash/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from Dashboard Service"))
	})

	// KPI cards
	mux.Handle("/dash/cards/kpis", cards.GetKPICards(db))
	mux.Handle("/dash/cards/diferencial", cards.GetDiferencialCard(db))

	// Rankings with goal completion
	mux.Handle("/dash/rankings/partner", rankings.GetRanking(db, books, "partner"))
	mux.Handle("/dash/rankings/manager", rankings.GetRanking(db, books, "manager"))
	mux.Handle("/dash/rankings/service-line", rankings.GetRanking(db, books, "service_line"))
	mux.Handle("/dash/rankings/sub-service-line", rankings.GetRanking(db, books, "sub_service_line"))

	log.Println("Dashboard Service started on :4143")
	err := http.ListenAndServe(":4143", mux)
	if err != nil {
		log.Fatalf("Dashboard Service failed: %v", err)
	}
}
