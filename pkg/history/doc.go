// Package history records PSL assessments over time.
//
// Each assessment of a document becomes an immutable Record holding the
// quality score, the four acceptance metrics and the issues found. Records
// are written through a Recorder to a Storage backend (see the storage
// subpackage) and pruned by the retention subpackage.
//
// # Basic Usage
//
//	store, err := storage.Open(cfg.History)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	recorder := history.NewRecorder(store)
//	a := psl.NewAssessor().AssessFile(ctx, "borscht.psl", nil)
//	if _, err := recorder.Record(ctx, "borscht.psl", a); err != nil {
//		return err
//	}
//
//	records, err := store.Query(ctx, &history.Query{Path: "borscht.psl", Limit: 10})
package history
