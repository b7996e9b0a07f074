package jobs

import (
	"fmt"
	"log"

	"RevenueTracker/internal/logger"
	"RevenueTracker/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	auditConfig := NewDefaultAuditConfig()

	// Override schedule from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["audit_schedule"].(string); ok && schedule != "" {
			auditConfig.Schedule = schedule
		}
	}

	if err := RunReconciliationAuditScheduler(auditConfig, s.db); err != nil {
		return fmt.Errorf("failed to start reconciliation audit scheduler: %v", err)
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Cron service started with reconciliation audit")
	}
	log.Println("Cron service started with reconciliation audit scheduled")
	return nil
}

func (s *CronService) Stop() error {
	return nil
}
