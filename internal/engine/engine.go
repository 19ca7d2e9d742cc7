// Package engine runs several searches over one maze and keeps watched maze
// files searched as they change.
//
//   - runner.go: concurrent multi-algorithm runs producing a Report
//   - watcher.go: reload-driven runs with notifications
//   - safegroup.go: errgroup with panic recovery
package engine
