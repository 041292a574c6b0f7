package main

import "github.com/eshaanmandal/tempgrid/cmd"

func main() {
	cmd.Execute()
}
