// Majority is a command-line utility for resolving majority-vote consensus rounds.
package main

import "github.com/relab/majority/internal/cli"

func main() {
	cli.Execute()
}
