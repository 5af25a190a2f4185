// Package slogobs provides a [log/slog]-backed implementation of the
// [observability.Observer] interface. It supports text and JSON output,
// environment-driven defaults (BRAIN_LOG_FORMAT, BRAIN_LOG_LEVEL), and a
// custom trace level below slog's Debug. The main entry point is [New].
package slogobs
