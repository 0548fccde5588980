package main

import (
	"context"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/cmd/groundwork-mirror/cli"
)

func main() {
	logrus.SetOutput(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	name := path.Base(os.Args[0])

	c := cli.NewCLI(name)
	err := cli.RootCmd(c).ExecuteContext(ctx)
	cobra.CheckErr(err)
}
