package main

import "github.com/lepinkainen/keepers/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
