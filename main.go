package main

import "github.com/nextlevelbuilder/pbgate/cmd"

func main() {
	cmd.Execute()
}
