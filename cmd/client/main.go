package main

import "gophvault/cmd/client/cmd"

func main() {
	cmd.Execute()
}
