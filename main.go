package main

import "guardrail/cmd"

func main() {
	cmd.Execute()
}
