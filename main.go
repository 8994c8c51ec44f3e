package main

import "github.com/moyu-x/clean-img/cmd"

func main() {
	cmd.Execute()
}
