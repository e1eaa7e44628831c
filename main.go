package main

import "hookforge/cmd"

func main() {
	cmd.Execute()
}
