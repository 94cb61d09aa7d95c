package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilt-dev/buildhelper/pkg/model"
)

// Version for Go-compiled builds that didn't go through the release tooling.
const devVersion = "0.3.0"

var globalBuildInfo model.BuildInfo

func SetBuildInfo(info model.BuildInfo) {
	globalBuildInfo = info
}

func buildInfo() model.BuildInfo {
	info := globalBuildInfo
	if info.Empty() {
		return defaultBuildInfo()
	}
	return info
}

// Formats as "v0.3.0, built 2026-01-02".
func buildStamp() string {
	info := buildInfo()
	date := info.Date
	if i := strings.Index(date, "T"); i != -1 {
		date = date[0:i]
	}
	devSuffix := ""
	if info.Dev {
		devSuffix = "-dev"
	}
	return fmt.Sprintf("v%s%s, built %s", info.Version, devSuffix, date)
}

// Returns a build datestamp in the format 2018-08-30
func defaultBuildDate() string {
	path, err := os.Executable()
	if err != nil {
		return "[unknown]"
	}

	info, err := os.Stat(path)
	if err != nil {
		return "[unknown]"
	}

	return info.ModTime().Format("2006-01-02")
}

func defaultBuildInfo() model.BuildInfo {
	return model.BuildInfo{
		Date:    defaultBuildDate(),
		Version: devVersion,
		Dev:     true,
	}
}

type versionCmd struct{}

func (c *versionCmd) register() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the buildhelper version",
		Args:  cobra.NoArgs,
	}
}

func (c *versionCmd) run(cmd *cobra.Command, args []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), buildStamp())
	return err
}
