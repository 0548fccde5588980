package cli

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type CLI struct {
	Name              string
	V                 *viper.Viper
	ServeRequiresRoot bool
}

func NewCLI(name string) *CLI {
	return &CLI{
		Name:              name,
		V:                 viper.New(),
		ServeRequiresRoot: true,
	}
}

func (cli *CLI) init() {
	cli.V.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cli.V.SetEnvPrefix("GROUNDWORK")
	cli.V.AutomaticEnv()
}

func (cli *CLI) bindFlags(flags *pflag.FlagSet) {
	cli.V.BindPFlags(flags)
}
