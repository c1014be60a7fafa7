package main

import (
	"context"
	"coursegraph/cmd/coursegraph/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
