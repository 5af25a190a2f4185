// Package jsonfile provides a file-backed implementation of [history.Store]
// that persists each thread as a pretty-printed JSON file under a root
// directory. Appends are serialized per thread, files are replaced atomically
// via write-then-rename, and corrupted files are recovered with jsonrepair
// where possible. The main entry point is [New].
package jsonfile
