// Command saju calculates four pillars charts from the command line and
// serves them as MCP tools over stdio.
package main

import "github.com/zapponejosh/saju-api/internal/cli"

func main() {
	cli.Execute()
}
