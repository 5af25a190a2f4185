// Package render is the terminal presentation layer: lipgloss-styled panels
// for final answers, per-provider intermediate results (failures included),
// and plain-text file export. It consumes completed responses and never
// participates in orchestration.
package render
