package rclone

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// stderrTailLines bounds how much of the tool's error output is replayed in
// the failure message.
const stderrTailLines = 20

// Run invokes rclone with the given arguments, streaming its output through
// the logger. A non-zero exit is wrapped together with the tail of stderr so
// the external tool's failure is reported verbatim. There are no retries.
func Run(ctx context.Context, bin string, args []string) error {
	log.Info().
		Str("command", strings.Join(append([]string{bin}, RedactArgs(args)...), " ")).
		Msg("Invoking rclone")

	cmd := exec.CommandContext(ctx, bin, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting rclone: %w", err)
	}

	var tail []string

	g := new(errgroup.Group)
	g.Go(func() error {
		return pumpLines(stdout, func(line string) {
			log.Info().Str("stream", "stdout").Msg(line)
		})
	})
	g.Go(func() error {
		return pumpLines(stderr, func(line string) {
			log.Info().Str("stream", "stderr").Msg(line)

			tail = append(tail, line)
			if len(tail) > stderrTailLines {
				tail = tail[1:]
			}
		})
	})

	pumpErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("rclone failed: %w: %s", err, strings.Join(tail, "\n"))
	}

	return pumpErr
}

func pumpLines(r io.Reader, emit func(string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
			emit(line)
		}
	}

	return sc.Err()
}
