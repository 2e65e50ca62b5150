package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(cc *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stratis",
		Short:         "Command-line client for the stratisd storage daemon",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkip(cmd, annotationSkipConfig) {
				return nil
			}
			_, err := cc.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newUsageError(err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cc.flags.config, "config", "c", "", "Configuration file path")
	flags.StringVar(&cc.flags.logLevel, "client-log-level", "", "Client log level (debug, info, warn, error)")
	flags.StringVarP(&cc.flags.output, "output", "o", "", "Output format for listings (table, plain, json)")
	flags.BoolVar(&cc.flags.noPreflight, "no-preflight", false, "Skip client-side block device checks")

	reg, err := newRegistry(commandTable())
	if err != nil {
		panic(err)
	}
	attach(rootCmd, cc, reg)

	return rootCmd
}
