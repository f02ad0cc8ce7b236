package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/konstruktoid/ansible-lastpass-inventory/internal/config"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/inventory"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/lastpass"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/ui"
	"github.com/spf13/cobra"
)

// vault is the part of lastpass.CLI the inventory needs.
type vault interface {
	lastpass.Resolver
	Check(ctx context.Context) error
}

// inventoryRequest selects what gets printed.
type inventoryRequest struct {
	ConfigPath string
	Pretty     bool
	Host       string
}

func runInventory(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.FormatError("Invalid settings", err.Error(), ""))
		return err
	}

	req := inventoryRequest{
		ConfigPath: settings.Config,
		Pretty:     listInventory,
		Host:       hostName,
	}
	cli := lastpass.NewCLI(settings.LPass, settings.Timeout)

	return writeInventory(cmd.Context(), req, cli, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// writeInventory runs the whole inventory pipeline. stdout only receives a
// complete document; every failure is reported on stderr instead.
func writeInventory(ctx context.Context, req inventoryRequest, v vault, stdout, stderr io.Writer) error {
	if err := v.Check(ctx); err != nil {
		fmt.Fprint(stderr, ui.FormatError("lpass is not ready", err.Error(), "install lpass and run 'lpass login <username>'"))
		return err
	}

	groups, err := config.LoadGroups(req.ConfigPath)
	if err != nil {
		fmt.Fprint(stderr, ui.FormatError("Failed to load config", err.Error(), "run 'ansible-lastpass-inventory init' to create a config file"))
		return err
	}

	var out any
	if req.Host != "" {
		out, err = inventory.BuildHost(ctx, groups, req.Host, v)
	} else {
		out, err = inventory.Build(ctx, groups, v)
	}
	if err != nil {
		reportLookupError(stderr, err)
		return err
	}

	return inventory.Write(stdout, out, req.Pretty)
}

func reportLookupError(w io.Writer, err error) {
	var lerr *lastpass.LookupError
	if !errors.As(err, &lerr) {
		fmt.Fprint(w, ui.FormatError("Inventory failed", err.Error(), ""))
		return
	}

	title := fmt.Sprintf("There was an issue with %s: %s", lerr.Alias, lerr.Identifier)
	detail := fmt.Sprintf("group %s: %v", lerr.Group, lerr.Err)
	hint := fmt.Sprintf("check the entry with 'lpass show %s'", lerr.Identifier)
	fmt.Fprint(w, ui.FormatError(title, detail, hint))
}
