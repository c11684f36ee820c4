package main

import "github.com/trooper-recruit/engage-api/cmd"

func main() {
	cmd.Execute()
}
