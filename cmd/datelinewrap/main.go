package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/GPlates/GPlates-sub027/cmd/datelinewrap/wrap"
	"github.com/GPlates/GPlates-sub027/x"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "datelinewrap",
	Short: "Cut geometries along the dateline",
	Long: `
datelinewrap reads points, lines and polygons on the sphere and splits them
where they cross the dateline, so that they can be drawn or exported in a
longitude/latitude projection without edges running across the whole map.
`,
	PersistentPreRunE: cobra.NoArgs,
}

var rootConf = viper.New()

func init() {
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	x.Check(rootConf.BindPFlags(RootCmd.PersistentFlags()))

	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	var subcommands = []*x.SubCommand{&wrap.Wrap}
	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		x.Check(sc.Conf.BindPFlags(sc.Cmd.Flags()))
		x.Check(sc.Conf.BindPFlags(RootCmd.PersistentFlags()))
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			x.Checkf(sc.Conf.ReadInConfig(), "reading config")
		}
	})
}

func main() {
	goflag.Parse()
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
