package main

import "disruption-sync/cmd"

func main() {
	cmd.Execute()
}
