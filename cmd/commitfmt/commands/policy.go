package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitfmt/cmd/commitfmt/internal/clierr"
	"github.com/bartekus/commitfmt/internal/config"
	"github.com/bartekus/commitfmt/internal/policy"
)

// NewPolicyCommand returns the `commitfmt policy` command.
func NewPolicyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the effective commit message policy",
		Long:  "Prints the policy that check and lint apply, after merging the policy file over the built-in defaults, as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("policy")
			pol, err := policy.Load(path, cmd.Flags().Changed("policy"))
			if err != nil {
				return clierr.Wrap(clierr.CodeConfig, "loading policy", err)
			}

			out, err := pol.Marshal()
			if err != nil {
				return fmt.Errorf("marshaling policy: %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return fmt.Errorf("writing policy: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("policy", config.DefaultPolicyFile, "policy file")

	return cmd
}
