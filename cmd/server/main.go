package main

import "github.com/eventmanager/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
