package cli

import (
	"bufio"
	"context"
	"errors"
	"io"

	"healthpoints/internal/domain"

	log "github.com/sirupsen/logrus"
)

// executor is the command surface the REPL drives.
type executor interface {
	Exec(ctx context.Context, line string) error
	printf(format string, args ...any)
}

// runREPL reads commands from r until "exit", EOF or ctx ends. Command
// errors are reported and the loop continues.
func runREPL(ctx context.Context, e executor, r *bufio.Reader, prompt string) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompt != "" {
			e.printf("%s", prompt)
		}
		line, err := readLine(r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		err = e.Exec(ctx, line)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			e.printf("Bye!\n")
			return nil
		case errors.Is(err, ErrLoginRequired), errors.Is(err, domain.ErrUnauthorized):
			e.printf("You need to log in first (\"login\").\n")
		default:
			log.WithError(err).Debug("command failed")
			e.printf("Error: %v\n", err)
		}
	}
}
