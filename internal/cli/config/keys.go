package config

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/config"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all configuration keys",
	Long: `List every configuration key with its type, default value and the
environment variable that overrides it.`,
	Args: cobra.NoArgs,
	RunE: runConfigKeys,
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, cBold("KEY")+"\t"+cBold("TYPE")+"\t"+cBold("DEFAULT")+"\t"+cBold("ENV"))
	for _, key := range config.SortedKeys() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cCyan(key.Path), key.Type, config.FormatDefault(key.Default), cDim(key.EnvVar()))
		fmt.Fprintf(w, "  %s\t\t\t\n", key.Description)
	}
	return w.Flush()
}
