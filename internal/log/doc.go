// Package log provides the scanner's slog setup.
//
// SecureHandler wraps any slog.Handler and
//   - masks values of sensitive keys (password, token, username, ...)
//   - masks values that look like credentials or key material
//   - rewrites home directory prefixes through a PathMasker
//
// LevelCritical extends slog with a level above Error, rendered as
// CRITICAL. NewTranscriptLogger mirrors every record to the console and
// to a log file.
//
// # Usage
//
//	logger := log.NewTranscriptLogger(os.Stderr, file, verbose,
//	    log.WithPathMasker(anonymize.DefaultMasker()))
//	slog.SetDefault(logger)
//	log.Critical(logger, "scan failed", "error", err)
package log
