// Package retention enforces the history retention policy.
//
// A Pruner deletes records older than history.retention.days and, when
// history.retention.max_records is set, the oldest records beyond that cap.
// A Scheduler runs the pruner on a cron schedule (robfig/cron, standard
// five-field syntax) while watch mode is active:
//
//	pruner := retention.NewPruner(store, retention.FromConfig(cfg.History.Retention))
//	scheduler := retention.NewScheduler(pruner)
//	if err := scheduler.Start(ctx); err != nil {
//		return err
//	}
//	defer scheduler.Stop()
package retention
