// Package utils provides shared low-level helpers used throughout the brain
// internals. It covers the synchronous JSON HTTP helper used by every provider
// adapter, plus generic string utilities for safe log output.
//
// Key entry points: [DoPostSync] for synchronous JSON round-trips and
// [TruncateString] for bounding response previews in errors and logs.
package utils
