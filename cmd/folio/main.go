package main

import "github.com/dmitrymomot/folio/internal/cli"

func main() {
	cli.Execute()
}
