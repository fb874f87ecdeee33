// tianshu computes daily fortune energy readings.
//
// Usage:
//
//	tianshu day [date]
//	tianshu range [--start date] [--days n]
//	tianshu record [--start date] [--days n]
//	tianshu verify [--from date] [--to date]
//	tianshu journal add --kind k [--note text]
//	tianshu test <scenarios-dir>
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tianshu/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cmd := cli.NewRootCommand()
	cmd.Version = version
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
