// Package watch reports changes to PSL documents on disk.
//
// A Watcher wraps fsnotify, filters events down to the configured document
// extensions and debounces them per file, so an editor that writes a file
// in several steps produces a single Event:
//
//	w, err := watch.New(&watch.Config{
//		Path:       "procedures",
//		Debounce:   100 * time.Millisecond,
//		Extensions: []string{".psl"},
//		Recursive:  true,
//		SkipHidden: true,
//	})
//	if err != nil {
//		return err
//	}
//	err = w.Watch(ctx, func(ev watch.Event) {
//		if ev.Op == watch.OpWrite {
//			reassess(ev.Path)
//		}
//	})
package watch
