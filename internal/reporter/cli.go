package reporter

import (
	"github.com/glitchwizard/tcore/internal/output"
)

// CLI is a Reporter that logs progress through the project's terminal
// output stack, using one scoped logger per reported phase.
type CLI struct{}

// NewCLI returns a CLI reporter.
func NewCLI() *CLI {
	return &CLI{}
}

// Report implements Reporter.
func (CLI) Report(e Event) {
	output.ScopedLogger(string(e.Phase)).Info(e.Type, "filePath", e.FilePath)
}
