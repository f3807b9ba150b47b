package x

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCommand pairs a cobra command with the viper instance its flags are
// bound to.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}
