// Package history defines the [Store] interface for persistent, per-thread
// conversation history. A thread is a named, ordered, bounded sequence of
// [Turn] values surviving process restarts. The interface is intentionally
// minimal: append, read, and a recent-window read used to build prompt
// context. The bundled file-backed implementation lives in the sibling
// package [github.com/leofalp/brain/providers/history/jsonfile].
package history
