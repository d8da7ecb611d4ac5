package main

import "trolley/cmd"

func main() {
	cmd.Execute()
}
