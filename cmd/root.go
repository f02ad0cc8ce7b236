package cmd

import (
	"os"
	"strings"

	"github.com/konstruktoid/ansible-lastpass-inventory/internal/config"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.0.1"

var (
	listInventory bool
	hostName      string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "ansible-lastpass-inventory",
	Short: "Populate an Ansible inventory with information from LastPass",
	Long: `ansible-lastpass-inventory is an Ansible dynamic inventory. It reads host
groups from lastpass_inventory.yml, looks every host up with the lpass CLI and
prints the inventory as JSON, with ansible_host, ansible_user,
ansible_password and ansible_become_password taken from the LastPass entry.

Use it as an inventory source: ansible-inventory -i ansible-lastpass-inventory --list`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInventory,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", config.DefaultConfigFile, "host group configuration file")
	flags.String("lpass", "lpass", "lpass executable name or path")
	flags.Duration("timeout", 0, "timeout for each lpass invocation (0 disables it)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.Flags().BoolVarP(&listInventory, "list", "l", false, "print the inventory")
	rootCmd.Flags().StringVar(&hostName, "host", "", "print the variables of a single host")
	rootCmd.MarkFlagsMutuallyExclusive("list", "host")

	for _, key := range []string{"config", "lpass", "timeout"} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
}

func initConfig() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("log_level")
}

// loadSettings reads settings from flags and environment and sets up logging.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(nil)
	if err != nil {
		return nil, err
	}
	if verbose {
		settings.LogLevel = "debug"
	}

	logger.Init(&logger.Config{
		Level:  settings.LogLevel,
		Output: os.Stderr,
		Pretty: true,
	})
	return settings, nil
}
