package cli

import (
	"github.com/spf13/cobra"

	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/parse"
)

// typesCommand creates the types command group.
func (c *CLI) typesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Inspect builtin types and validate type definition files",
	}

	cmd.AddCommand(c.typesListCommand())
	cmd.AddCommand(c.typesCheckCommand())

	return cmd
}

// typesListCommand creates the "types list" subcommand.
func (c *CLI) typesListCommand() *cobra.Command {
	var typesPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List builtin type codes and loaded custom types",
		RunE: func(cmd *cobra.Command, args []string) error {
			printInfo("builtin types")
			for _, b := range parse.Builtins() {
				printKeyValue(b.Code, b.Doc)
				printDetail("pattern: %s", b.Pattern)
			}

			if typesPath == "" {
				return nil
			}

			convs, err := convert.LoadTOML(typesPath)
			if err != nil {
				return err
			}
			printInfo("custom types from %s", typesPath)
			for _, conv := range convs {
				printKeyValue(conv.Name, conv.Pattern)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typesPath, "types", "t", "", "TOML file with custom type definitions")
	return cmd
}

// typesCheckCommand creates the "types check" subcommand.
func (c *CLI) typesCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a TOML type definitions file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			convs, err := convert.LoadTOML(args[0])
			if err != nil {
				printError("invalid: %v", err)
				return err
			}

			// Registering catches duplicate names across definitions.
			if _, err := convert.BuildTypeDict(convs...); err != nil {
				printError("invalid: %v", err)
				return err
			}

			printSuccess("%s defines %d valid type(s)", args[0], len(convs))
			for _, conv := range convs {
				printDetail("%s: %s", conv.Name, conv.Pattern)
			}
			return nil
		},
	}
}
