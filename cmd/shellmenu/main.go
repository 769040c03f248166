package main

import "shellmenu/internal/cli"

func main() {
	cli.Execute()
}
