package conversation

import (
	"context"
	"fmt"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes for out-of-band terminal messages. The chat view has
// its own lipgloss styles; these only dress the notifier's direct prints.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	cyan  = "\033[36m"
)

// PrintFunc prints a formatted line. fmt.Printf and display.UI.Printf
// both satisfy it.
type PrintFunc func(format string, a ...interface{})

// CLINotifier delivers kitchen-side notices (voice prompts, capture
// status) to the terminal outside the chat transcript.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewCLINotifier creates a terminal notifier. A nil printFn falls back
// to fmt.Printf with a trailing newline.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints a routine notice in cyan.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notice: %s", message)
	n.printFn("%s%s%s%s", cyan, bold, message, reset)
	return nil
}

// NotifyUrgent prints an attention-demanding notice in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("urgent notice: %s", message)
	n.printFn("%s%s%s%s", red, bold, message, reset)
	return nil
}
