package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ryclarke/gh-metadata-migrator/catalog"
	"github.com/ryclarke/gh-metadata-migrator/config"
	"github.com/ryclarke/gh-metadata-migrator/utils"
)

func addPairsCmd() *cobra.Command {
	// pairsCmd prints the parsed input file without contacting either endpoint
	pairsCmd := &cobra.Command{
		Use:   "pairs",
		Short: "Print the repository pairs read from the input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := utils.BindFlags(cmd, map[string]string{inputFileFlag: config.InputFile}); err != nil {
				return err
			}

			pairs, err := loadPairs(cmd)
			if err != nil {
				return err
			}

			catalog.PrintPairs(cmd.OutOrStdout(), pairs)

			return nil
		},
	}

	addInputFlag(pairsCmd)

	return pairsCmd
}
