package upload

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

func StartUploadService(pool *pgxpool.Pool) {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from Upload Service"))
	})

	mux.Handle("/upload/weekly", UploadWeeklyReports(pool))
	mux.Handle("/upload/dates", GetReportingDates(pool))

	log.Println("Upload Service started on :6143")
	err := http.ListenAndServe(":6143", mux)
	if err != nil {
		log.Fatalf("Upload Service failed: %v", err)
	}
}
