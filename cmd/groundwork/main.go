package main

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/mattn/go-isatty"

	"github.com/groundworkhq/groundwork/cmd/groundwork/cli"
	"github.com/groundworkhq/groundwork/pkg/logging"
	"github.com/groundworkhq/groundwork/pkg/prompts"
	"github.com/groundworkhq/groundwork/pkg/target"
)

func main() {
	ctx := context.Background()

	logging.SetupLogging(target.NewEnvironment(os.Getenv("GROUNDWORK_DATA_DIR")))

	prompts.SetTerminal(isatty.IsTerminal(os.Stdout.Fd()))
	prompts.SetHeadless(!isatty.IsTerminal(os.Stdin.Fd()))

	name := path.Base(os.Args[0])

	InitAndExecute(ctx, name)
}

func InitAndExecute(ctx context.Context, name string) {
	if err := cli.RootCmd(ctx, name).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
