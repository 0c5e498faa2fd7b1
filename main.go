package main

import "diplomagen/cmd"

func main() {
	cmd.Execute()
}
