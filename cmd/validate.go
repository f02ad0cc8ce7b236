package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/konstruktoid/ansible-lastpass-inventory/internal/config"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/lastpass"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/model"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check lpass and the host group configuration",
	Long: `Check that lpass is installed and logged in and that the host group
configuration can be loaded. No secrets are looked up.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid settings", err.Error(), ""))
		return err
	}

	cli := lastpass.NewCLI(settings.LPass, settings.Timeout)
	return validate(cmd.Context(), settings.Config, cli, cmd.OutOrStdout())
}

type checker interface {
	Check(ctx context.Context) error
}

func validate(ctx context.Context, configPath string, lpass checker, w io.Writer) error {
	fmt.Fprintln(w, ui.Bold("Validating "+configPath+"..."))

	saved := ui.Out
	ui.Out = w
	defer func() { ui.Out = saved }()

	passed := 0
	failed := 0

	if err := lpass.Check(ctx); err != nil {
		ui.ValidationErr("lpass", err.Error(), "install lpass and run 'lpass login <username>'")
		failed++
	} else {
		ui.ValidationOK("lpass", "installed and logged in")
		passed++
	}

	groups, err := config.LoadGroups(configPath)
	if err != nil {
		ui.ValidationErr("config", err.Error(), "run 'ansible-lastpass-inventory init' to create a config file")
		failed++
	} else {
		for _, g := range groups {
			ui.ValidationOK("group "+g.Name, describeGroup(g))
			passed++
		}
		if len(groups) == 0 {
			ui.Warn("no groups configured, the inventory will be empty")
		}
	}

	fmt.Fprintln(w)
	if failed == 0 {
		ui.Success(fmt.Sprintf("%d checks passed, 0 errors", passed))
		return nil
	}
	fmt.Fprintf(w, "%d checks passed, %d errors\n", passed, failed)
	return fmt.Errorf("%d validation errors", failed)
}

func describeGroup(g model.Group) string {
	byAlias := 0
	for _, h := range g.Hosts {
		if h.Identifier == "" {
			byAlias++
		}
	}

	detail := fmt.Sprintf("%d hosts", len(g.Hosts))
	if len(g.Hosts) == 1 {
		detail = "1 host"
	}
	if byAlias > 0 {
		detail += fmt.Sprintf(", %d looked up by alias", byAlias)
	}
	return detail
}
