package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/amberbeaumont/IThelpdesklite/internal/app"
	"github.com/amberbeaumont/IThelpdesklite/internal/config"
	"github.com/amberbeaumont/IThelpdesklite/internal/service"
	"github.com/amberbeaumont/IThelpdesklite/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Build help-desk reports over tickets, equipment and users",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newFieldsCmd(), newRunCmd())
	return root
}

// withReports loads the same configuration as the API and hands fn a report
// service over the configured data source.
func withReports(fn func(cmd *cobra.Command, svc *service.ReportService) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.WorkspaceDB = ":memory:" // reports never read the workspace
		l := logger.NewWriter(cmd.ErrOrStderr(), cfg.Env, cfg.LogLevel)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		st, err := app.Open(ctx, l, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := service.NewReportService(l, st.Tickets, st.Equipment, st.Users, service.ReportOptions{
			Locale:   cfg.Locale(),
			Location: cfg.Location(),
		})
		return fn(cmd, svc)
	}
}
