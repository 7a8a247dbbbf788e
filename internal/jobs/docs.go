// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the live dashboards.
//
// # Available Jobs
//
// 1. BoardRefreshJob - Runs every 10 seconds and republishes every active
// order through the event broadcaster as a refresh upsert
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, broadcaster, logger)
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
// The refresh job uses the cron expression "*/10 * * * * *" so a dashboard
// that dropped a live event converges on current state within 10 seconds.
//
// # Error Handling
//
// - Refresh failures are logged and retried on the next cycle
// - A failed job start is returned to the caller so startup can abort
package jobs
