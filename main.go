package main

import "github.com/meteolog/almanac/internal/cmd"

func main() {
	cmd.Execute()
}
