// Package hints turns CLI errors into short actionable suggestions, appended
// to the error message as "\n  hint: <text>".
package hints

import (
	"context"
	"errors"
	"os"
	"strings"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/server"
	"github.com/alnah/go-mdpreview/internal/watch"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// Context supplies values a hint may mention.
type Context struct {
	Styles func() []string // available preview style names; may be nil
}

type rule struct {
	target error
	hint   func(Context) string
}

// rules are tried in order; the first whose target matches wins.
var rules = []rule{
	{mdpreview.ErrBrowserConnect, func(Context) string { return detectBrowserEnv().hint() }},
	{context.DeadlineExceeded, constant("for large documents, use --timeout or MDPREVIEW_TIMEOUT")},
	{config.ErrConfigNotFound, constant("use --config /path/to/file.yaml or put <name>.yaml in ~/.config/go-mdpreview/")},
	{mdpreview.ErrStyleNotFound, styleHint},
	{server.ErrListen, constant("another process may be using the address; use --addr or MDPREVIEW_ADDR")},
	{watch.ErrWatch, constant("raise fs.inotify.max_user_watches or fs.inotify.max_user_instances")},
}

// For returns the formatted hint for err, or "" when none applies.
func For(err error, c Context) string {
	if err == nil {
		return ""
	}
	for _, r := range rules {
		if errors.Is(err, r.target) {
			return format(r.hint(c))
		}
	}
	return ""
}

func constant(text string) func(Context) string {
	return func(Context) string { return text }
}

func styleHint(c Context) string {
	if c.Styles == nil {
		return "run 'mdpreview styles' to list styles"
	}
	names := c.Styles()
	if len(names) == 0 {
		return ""
	}
	return "available: " + strings.Join(names, ", ")
}

// browserEnv is what the browser launcher sees of the environment.
type browserEnv struct {
	ci        bool
	container bool
	noSandbox bool
	customBin bool
}

func detectBrowserEnv() browserEnv {
	return browserEnv{
		ci: os.Getenv("CI") != "" ||
			os.Getenv("GITHUB_ACTIONS") != "" ||
			os.Getenv("GITLAB_CI") != "" ||
			os.Getenv("JENKINS_URL") != "",
		container: IsInContainer(),
		noSandbox: os.Getenv("ROD_NO_SANDBOX") == "1",
		customBin: os.Getenv("ROD_BROWSER_BIN") != "",
	}
}

// hint suggests the launcher variables that are not set yet.
func (e browserEnv) hint() string {
	var parts []string
	if (e.ci || e.container) && !e.noSandbox {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if !e.customBin {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return strings.Join(parts, "; ")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
