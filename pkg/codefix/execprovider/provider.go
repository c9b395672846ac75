// Package execprovider implements codefix.Provider by shelling out to an
// external command. The request is written to the command's stdin as JSON
// and a codefix.CombinedFix document is expected on stdout. This keeps the
// language engine (parsing, type checking, fix generation) entirely outside
// the tsfix process.
package execprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/yaklabco/tsfix/pkg/codefix"
)

// ErrEmptyCommand is returned when the provider is constructed without a
// command to run.
var ErrEmptyCommand = errors.New("execprovider: empty provider command")

// Provider invokes an external fix engine once per request.
type Provider struct {
	argv []string
	dir  string
}

var _ codefix.Provider = (*Provider)(nil)

// New creates a provider that runs command (split on whitespace) with the
// request appended to stdin. dir is the working directory for the command;
// empty means inherit.
func New(command, dir string) (*Provider, error) {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return &Provider{argv: argv, dir: dir}, nil
}

// GetCombinedFix implements codefix.Provider.
func (p *Provider) GetCombinedFix(ctx context.Context, req codefix.Request) (*codefix.CombinedFix, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("execprovider: marshal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.argv[0], p.argv[1:]...)
	cmd.Dir = p.dir
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("execprovider: %s: %w: %s", p.argv[0], err, msg)
		}
		return nil, fmt.Errorf("execprovider: %s: %w", p.argv[0], err)
	}

	var fix codefix.CombinedFix
	if err := json.Unmarshal(stdout.Bytes(), &fix); err != nil {
		return nil, fmt.Errorf("execprovider: decode response from %s: %w", p.argv[0], err)
	}
	return &fix, nil
}
