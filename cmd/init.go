package cmd

import (
	"fmt"
	"os"

	"github.com/konstruktoid/ansible-lastpass-inventory/internal/ui"
	"github.com/konstruktoid/ansible-lastpass-inventory/internal/wizard"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a lastpass_inventory.yml config file interactively",
	Long: `Ask for host groups and the LastPass entries of their hosts, then write
the host group configuration used by the inventory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid settings", err.Error(), ""))
		return err
	}
	configPath := settings.Config

	detection := wizard.Detect(nil, settings.LPass, configPath)

	// Check if config already exists
	if detection.ConfigExists {
		fmt.Printf("%s already exists.\n", configPath)
		fmt.Print("Overwrite? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if detection.LPassPath == "" {
		ui.Warn(settings.LPass + " not found in PATH")
	}

	answers, err := wizard.Run(detection)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	content, err := wizard.GenerateConfig(*answers)
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	ui.Success(fmt.Sprintf("Created %s", configPath))
	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("ansible-lastpass-inventory validate"))
	fmt.Printf("           %s\n", ui.Hint("then ansible-inventory -i ansible-lastpass-inventory --list"))

	return nil
}
