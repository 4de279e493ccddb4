// Package logging provides structured logging with per-module log level configuration.
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:   "info", // Global log level: debug, info, warn, error
//		Format:  "text", // Output format: text or json
//		Journal: true,   // Also send to journald when it is reachable
//		Modules: map[string]string{
//			logging.ModuleVerify: "debug", // Per-module overrides
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger(logging.ModuleVerify)
//	logger.Info("baseline verified", "records", 17)
//
// Loggers obtained before Initialize are updated in place, so package-level
// loggers are safe.
//
// # Output Destinations
//
// Logs go to stderr so stdout stays clean for command output.
//
//	Journal disabled or unreachable      → TextHandler or JSONHandler on stderr
//	Journal reachable, stderr elsewhere  → MultiHandler (both)
//	Journal reachable, stderr is journal → JournalHandler only
//
// Journal availability is checked via [github.com/coreos/go-systemd/v22/journal.Enabled].
// Entries carry SYSLOG_IDENTIFIER=abiprobe and upper-cased attributes:
//
//	journalctl -t abiprobe MODULE=verify
//
// # Configuration
//
//	[logging]
//	level = "info"
//	format = "text"
//	journal = true
//
//	[logging.modules]
//	verify = "debug"
//	devices = "warn"
package logging
