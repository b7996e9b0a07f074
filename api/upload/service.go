package upload

import (
	"RevenueTracker/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UploadService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewUploadService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &UploadService{config: cfg, pool: pool}
}

func (s *UploadService) Name() string {
	return "upload"
}

func (s *UploadService) Start() error {
	go StartUploadService(s.pool)
	return nil
}

func (s *UploadService) Stop() error {
	return nil
}
