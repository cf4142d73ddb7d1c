package compare

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultCompareTool is the external exact-diff tool used when none is
// configured. cmp follows the conventional exit-status protocol:
// 0 identical, 1 different, anything else is a failure.
const DefaultCompareTool = "cmp"

// ExecComparator shells out to an external exact-diff tool.
// Retained for environments where the platform comparison utility is
// trusted over an in-process implementation.
type ExecComparator struct {
	tool string
}

// NewExecComparator creates a comparator backed by an external tool.
// An empty tool name selects DefaultCompareTool.
func NewExecComparator(tool string) *ExecComparator {
	if tool == "" {
		tool = DefaultCompareTool
	}
	return &ExecComparator{tool: tool}
}

// FilesEqual invokes the external tool with both paths and interprets
// its exit status: 0 means identical, 1 means different, anything else
// (including failure to launch) is a comparison error.
func (c *ExecComparator) FilesEqual(ctx context.Context, pathA, pathB string) (bool, error) {
	cmd := exec.CommandContext(ctx, c.tool, "-s", pathA, pathB)

	err := cmd.Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}

	return false, fmt.Errorf("compare tool %s failed: %w", c.tool, err)
}

// Name returns the comparator name
func (c *ExecComparator) Name() string {
	return "exec"
}
