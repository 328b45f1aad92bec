package main

import "invoice-manager/internal/adapters/cli"

func main() {
	cli.Execute()
}
