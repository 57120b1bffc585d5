package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prstats/internal/domain"
	"prstats/internal/github"
	"prstats/internal/logger"
	"prstats/internal/report"
	"prstats/internal/usecase"
)

type options struct {
	repo     string
	period   int
	token    string
	openOnly bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "prstats",
		Short:        "Print pull-request statistics for a ScyllaDB repository",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", "scylla", "repository to inspect")
	cmd.Flags().IntVar(&opts.period, "period", 0, "days to look back for closed pull requests (0 = entire history)")
	cmd.Flags().StringVar(&opts.token, "token", "", "github authentication token; without it the API rate limit makes the run fail anyway")
	cmd.Flags().BoolVar(&opts.openOnly, "open-only", false, "only look at open pull requests")

	cobra.CheckErr(cmd.MarkFlagRequired("token"))

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	logg := logger.New()
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	ctx := logger.WithContext(cmd.Context(), logg)

	client := github.NewClient(ctx, opts.token)
	resolver := github.NewUserResolver(client)
	source := github.NewPullRequestSource(client, resolver)

	svc := usecase.NewService(source)

	rep, err := svc.BuildReport(ctx, usecase.ReportParams{
		Repo:       opts.repo,
		PeriodDays: opts.period,
		OpenOnly:   opts.openOnly,
		AsOf:       domain.Date(time.Now()),
	})
	if err != nil {
		return fmt.Errorf("can not build report: %w", err)
	}

	report.NewRenderer(cmd.OutOrStdout()).Render(rep)

	return nil
}
