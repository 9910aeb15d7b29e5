package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chip8redo/chip-go/internal/config"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner logs the program name and version unless quiet mode is set.
func PrintBanner(logger *log.Logger, opts config.Options, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip-go", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintVersion writes the full version including build information.
func PrintVersion(w io.Writer, version, commit, date string) {
	_, _ = fmt.Fprintf(w, "chip-go version: %s\n", buildinfo.Version(version, commit, date))
}
