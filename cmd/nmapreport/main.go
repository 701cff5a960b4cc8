// Command nmapreport converts nmap XML output into report artifacts:
// a CSV record table plus optional Excel, HTML and JSON renditions.
package main

import (
	"github.com/anstrom/nmapreport/cmd/cli"
)

// Build information - set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
