package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/petbot/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule set as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ruleSet, err := loadRules(cfg)
		if err != nil {
			return err
		}
		data, err := rules.Marshal(ruleSet)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
