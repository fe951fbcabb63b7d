// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// StaleCartSweepJob abandons carts that were not updated within the configured
// TTL. Each tick drains stale carts in batches and stops at the first short batch.
//
// # Usage
//
//	sweep, err := jobs.NewStaleCartSweepJob(handler, "@every 5m", 72*time.Hour, 100, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	jobManager := jobs.NewJobManager()
//	jobManager.Register("stale cart sweep", sweep)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing sweep is logged and retried on the next tick. Overlapping runs are
// skipped. Failed job starts stop any already running jobs.
package jobs
