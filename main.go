package main

import "github.com/echomindr/echomindr/cmd"

func main() {
	cmd.Execute()
}
