// Command tablemarks manages persistent highlights on org-style tables.
package main

import "github.com/mesh-intelligence/tablemarks/internal/cli"

func main() {
	cli.Execute()
}
