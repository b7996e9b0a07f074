package config

const (
	DefaultTimeZone = "America/Caracas"
	DefaultGoalsDir = "./goals"

	// Header discovery scan window for uploaded exports.
	MaxHeaderScanRows = 10

	// Reconciliation audit: Monday 06:00, after the weekly upload lands.
	DefaultAuditSchedule = "0 6 * * 1"
)
