// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. StaleOrderJob - Periodically scans for orders that no courier has claimed
// within the configured threshold and notifies administrators.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(notifyStaleOrdersHandler, threshold, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The stale order job uses a standard five-field cron expression, configured
// through the application settings. The default "*/10 * * * *" runs the scan
// every ten minutes, which keeps reminder volume low while still surfacing
// unclaimed orders promptly.
//
// # Error Handling
//
// - Job run errors are logged and the schedule keeps running
// - Failed job starts abort application startup
package jobs
