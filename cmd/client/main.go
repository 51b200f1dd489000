package main

import (
	"quotekeeper/cmd/client/cmd"
)

func main() {
	cmd.Execute()
}
