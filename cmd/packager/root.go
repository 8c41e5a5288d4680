package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/devsolux/yt-dlp-gui/internal/build"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var osFlag string
	var archFlag string

	rootCmd := &cobra.Command{
		Use:           "packager",
		Short:         "Builds and packages the application for distribution",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := build.Load(configFlag)
			if err != nil {
				return err
			}

			pipeline := build.NewPipeline(cfg, osFlag, archFlag, cmd.OutOrStdout())
			artifact, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), artifact)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Packaging config file path")
	rootCmd.PersistentFlags().StringVar(&osFlag, "os", runtime.GOOS, "Target operating system")
	rootCmd.PersistentFlags().StringVar(&archFlag, "arch", runtime.GOARCH, "Target architecture")

	rootCmd.AddCommand(newDepsCommand(&osFlag))
	rootCmd.AddCommand(newCleanCommand(&configFlag, &osFlag, &archFlag))

	return rootCmd
}

func newDepsCommand(osFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external tools the packaging pipeline needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := build.CheckBinaries(build.Requirements(*osFlag))
			fmt.Fprintln(cmd.OutOrStdout(), build.RenderStatusTable(statuses))
			return build.MissingRequired(statuses)
		},
	}
}

func newCleanCommand(configFlag, osFlag, archFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove previous build and dist output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := build.Load(*configFlag)
			if err != nil {
				return err
			}
			return build.NewPipeline(cfg, *osFlag, *archFlag, cmd.OutOrStdout()).Clean()
		},
	}
}
