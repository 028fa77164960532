package remote

import (
	"context"
	"strings"
)

// Connector opens command sessions to remote hosts
type Connector interface {
	// Connect opens a session to host as username. An empty username
	// means the current local user.
	Connect(ctx context.Context, host, username string) (Session, error)
}

// Session is an open execution channel to a single host. A session is
// owned by exactly one host iteration and must be closed on every exit
// path.
type Session interface {
	// Run executes argv and fails on any non-zero exit
	Run(ctx context.Context, argv []string) error

	// Output executes argv and returns its combined trimmed output
	Output(ctx context.Context, argv []string) (string, error)

	// TryRun executes argv best-effort; failures are logged at debug
	// level and never returned
	TryRun(ctx context.Context, argv []string)

	// Which reports whether an executable is on the remote PATH
	Which(ctx context.Context, name string) (bool, error)

	// PathExists reports whether a remote path exists
	PathExists(ctx context.Context, path string) (bool, error)

	// Close releases the session
	Close() error
}

// Quote escapes a single argument for the remote shell
func Quote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n\"'`$\\&|;<>(){}[]*?!#~") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// QuoteArgs joins argv into a single shell command line
func QuoteArgs(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}
