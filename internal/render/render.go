package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leofalp/brain/core/brain"
	"github.com/leofalp/brain/core/dispatch"
)

// Renderer formats responses for the terminal. It is pure presentation: it
// never mutates what it is given and has no opinion on orchestration.
type Renderer struct {
	out io.Writer

	title       lipgloss.Style
	answerPanel lipgloss.Style
	deepPanel   lipgloss.Style
	failedPanel lipgloss.Style
	failedText  lipgloss.Style
	dim         lipgloss.Style
}

// New returns a Renderer writing to out (os.Stdout when nil).
func New(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{
		out:         out,
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		answerPanel: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("10")).Padding(0, 1),
		deepPanel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1),
		failedPanel: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 1),
		failedText:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:         lipgloss.NewStyle().Faint(true),
	}
}

// Response prints the final answer, preceded in deep mode by one panel per
// individual provider result. Failed providers are always shown as failed
// next to the successes, never hidden.
func (r *Renderer) Response(response *brain.Response) {
	if response.Mode == brain.ModeDeep {
		for _, result := range response.Individual {
			r.providerResult(result)
		}
	}

	title := fmt.Sprintf("%s (%s)", titleCase(response.Provider), response.Model)
	if response.Mode == brain.ModeDeep {
		title = fmt.Sprintf("Deep Thinking Synthesis via %s", response.Provider)
	}

	fmt.Fprintln(r.out, r.title.Render(title))
	fmt.Fprintln(r.out, r.answerPanel.Render(response.Content))

	if response.Usage != nil && response.Usage.TotalTokens > 0 {
		fmt.Fprintln(r.out, r.dim.Render(fmt.Sprintf("Tokens used: %d", response.Usage.TotalTokens)))
	}
}

// providerResult prints one intermediate result panel: content for a success,
// the classified failure for anything else.
func (r *Renderer) providerResult(result dispatch.Result) {
	header := strings.ToUpper(result.Provider)
	if result.Ok() {
		fmt.Fprintln(r.out, r.title.Render(header+" Response:"))
		fmt.Fprintln(r.out, r.deepPanel.Render(result.Content))
		return
	}
	fmt.Fprintln(r.out, r.failedText.Render(header+" failed:"))
	fmt.Fprintln(r.out, r.failedPanel.Render(r.failedText.Render(result.Failure.Error())))
}

// Error prints a request-level failure.
func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.out, r.failedText.Render("Error: "+err.Error()))
}

// Info prints a low-emphasis status line.
func (r *Renderer) Info(msg string) {
	fmt.Fprintln(r.out, r.dim.Render(msg))
}

// titleCase uppercases the first byte of an ASCII provider id for display.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// WriteFile exports a prompt/response pair as plain text.
func WriteFile(path, prompt string, response *brain.Response) error {
	content := fmt.Sprintf("Question: %s\n\nResponse: %s\n", prompt, response.Content)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
