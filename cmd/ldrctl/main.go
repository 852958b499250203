package main

import "github.com/Conceptual-Machines/ldr-sync-api/internal/cli"

func main() {
	cli.Execute()
}
