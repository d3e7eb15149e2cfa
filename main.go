package main

import "github.com/fileandclaim/fcidash/cmd"

func main() {
	cmd.Execute()
}
