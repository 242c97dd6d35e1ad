package main

import "debt-planner/cmd"

func main() {
	cmd.Execute()
}
