package lastpass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/logger"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/model"
)

// Resolver fetches one secret record by identifier.
type Resolver interface {
	Resolve(ctx context.Context, identifier string) (model.SecretRecord, error)
}

// CLI resolves secrets by running the lpass command line client. Every
// call spawns exactly one process; nothing is cached between calls.
type CLI struct {
	// Path is the lpass executable, either a name looked up in PATH or a path.
	Path string

	// Timeout bounds each invocation. Zero means no timeout.
	Timeout time.Duration
}

// NewCLI returns a CLI for the given executable.
func NewCLI(path string, timeout time.Duration) *CLI {
	if path == "" {
		path = "lpass"
	}
	return &CLI{Path: path, Timeout: timeout}
}

// Check makes sure lpass is installed and the session is logged in. On
// success Path holds the resolved executable.
func (c *CLI) Check(ctx context.Context) error {
	path, err := exec.LookPath(c.Path)
	if err != nil {
		return &PreconditionError{Op: "locating " + c.Path, Err: fmt.Errorf("%w: %v", ErrNotInstalled, err)}
	}
	c.Path = path

	out, err := c.run(ctx, "ls")
	if err != nil {
		return &PreconditionError{Op: "checking lpass session", Err: err}
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return &PreconditionError{Op: "checking lpass session", Err: ErrNotLoggedIn}
	}

	logger.Logger.Debug().Str("lpass", c.Path).Msg("lpass session ready")
	return nil
}

// Resolve runs `lpass show <identifier> --json` and returns the first record.
func (c *CLI) Resolve(ctx context.Context, identifier string) (model.SecretRecord, error) {
	logger.Logger.Debug().Str("identifier", identifier).Msg("resolving secret")

	out, err := c.run(ctx, "show", identifier, "--json")
	if err != nil {
		return model.SecretRecord{}, &LookupError{Identifier: identifier, Err: err}
	}

	record, err := ParseShow(out)
	if err != nil {
		return model.SecretRecord{}, &LookupError{Identifier: identifier, Err: err}
	}
	return record, nil
}

// ParseShow decodes `lpass show --json` output and returns its first record.
func ParseShow(data []byte) (model.SecretRecord, error) {
	var records []model.SecretRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return model.SecretRecord{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(records) == 0 {
		return model.SecretRecord{}, ErrNoRecords
	}
	return records[0], nil
}

func (c *CLI) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.WaitDelay = time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, c.Timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running lpass %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("running lpass %s: %w", args[0], err)
	}
	return out, nil
}
