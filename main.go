package main

import "github.com/litetable/litetable-schema/internal/cli"

func main() {
	cli.Main()
}
