package wizard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/clustervault/s3dirsync/config"
	"github.com/clustervault/s3dirsync/structs"
)

// Wizard collects a SyncRequest through a sequential interactive session.
// Input and output are injected so sessions can be scripted in tests.
type Wizard struct {
	out   io.Writer
	lines chan readResult
}

type readResult struct {
	line string
	err  error
}

// New starts a reader goroutine so prompts can select between the next input
// line and context cancellation; an interrupt must be able to unblock a
// session stuck at a prompt.
func New(in io.Reader, out io.Writer) *Wizard {
	w := &Wizard{
		out:   out,
		lines: make(chan readResult),
	}

	go func() {
		r := bufio.NewReader(in)
		for {
			line, err := r.ReadString('\n')
			w.lines <- readResult{line: line, err: err}
			if err != nil {
				close(w.lines)
				return
			}
		}
	}()

	return w
}

// Say writes a line to the interactive output.
func (w *Wizard) Say(format string, a ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", a...)
}

// ask prints the prompt and reads one trimmed line of input, returning early
// when the context is canceled.
func (w *Wizard) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(w.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-w.lines:
		if !ok {
			return "", fmt.Errorf("reading input: %w", io.EOF)
		}
		if res.err != nil && res.line == "" {
			return "", fmt.Errorf("reading input: %w", res.err)
		}

		return strings.TrimSpace(res.line), nil
	}
}

// Confirm asks a yes/no question and returns true only on an explicit "yes".
func (w *Wizard) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := w.ask(ctx, prompt)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(answer, "yes"), nil
}

// Collect runs the full prompting sequence and returns a validated request.
// Required fields re-prompt until satisfied; defaults are applied when the
// answer is blank.
func (w *Wizard) Collect(ctx context.Context) (*structs.SyncRequest, error) {
	req := &structs.SyncRequest{}

	src, err := w.askSourceDir(ctx)
	if err != nil {
		return nil, err
	}
	req.SourcePath = src

	if err := w.askDestination(ctx, req); err != nil {
		return nil, err
	}

	if err := w.askOptions(ctx, req); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// ConfirmRequest shows the assembled request and requires an explicit "yes"
// before the sync may proceed.
func (w *Wizard) ConfirmRequest(ctx context.Context, req *structs.SyncRequest) (bool, error) {
	w.Say("")
	w.Say("--- Sync Configuration Summary ---")
	fmt.Fprint(w.out, req.Summary())

	return w.Confirm(ctx, "\nProceed with this configuration? (yes/no): ")
}

// askOptions collects the dry-run, deletion and exclusion settings, with the
// defaults coming from configuration.
func (w *Wizard) askOptions(ctx context.Context, req *structs.SyncRequest) error {
	w.Say("")
	w.Say("--- Sync Options ---")

	dryRun, err := w.ask(ctx, fmt.Sprintf("Perform a dry run first? (yes/no, default: %s): ", defaultAnswer(config.SyncDefaultDryRun.Bool())))
	if err != nil {
		return err
	}
	req.DryRun = parseBool(dryRun, config.SyncDefaultDryRun.Bool())

	del, err := w.ask(ctx, fmt.Sprintf("Delete files in destination that don't exist in source? (yes/no, default: %s): ", defaultAnswer(config.SyncDefaultDelete.Bool())))
	if err != nil {
		return err
	}
	req.DeleteExtraneous = parseBool(del, config.SyncDefaultDelete.Bool())

	exclude, err := w.ask(ctx, "Enter patterns to exclude (comma-separated, e.g. '*.tmp,*.temp,temp/'): ")
	if err != nil {
		return err
	}
	req.ExcludePatterns = splitPatterns(exclude)

	return nil
}

// parseBool maps a yes/no answer onto a default: a blank answer keeps the
// default, anything else only flips it on an explicit opposite.
func parseBool(answer string, def bool) bool {
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true
	case "no", "n":
		return false
	default:
		return def
	}
}

func defaultAnswer(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

// splitPatterns splits a comma-separated pattern list, preserving order and
// dropping empty entries.
func splitPatterns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var patterns []string

	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}

	return patterns
}
