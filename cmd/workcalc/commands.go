package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
	"github.com/yanqian/workcalc/internal/domain/workingtime"
	"github.com/yanqian/workcalc/internal/infra/config"
	"github.com/yanqian/workcalc/internal/infra/holidays/capta"
	"github.com/yanqian/workcalc/internal/infra/holidays/fallback"
	"github.com/yanqian/workcalc/internal/infra/holidaystore"
	apperrors "github.com/yanqian/workcalc/pkg/errors"
)

type options struct {
	offline bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "workcalc",
		Short:         "Business-time calculator for the Colombian work calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.offline, "offline", false, "use the embedded holiday list instead of the remote catalog")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(newCalcCmd(opts), newHolidaysCmd(opts))
	return root
}

func newCalcCmd(opts *options) *cobra.Command {
	var days, hours, date string
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Advance a UTC instant by business days and hours",
		Example: `  workcalc calc --days 1 --hours 4 --date 2025-04-10T15:00:00.000Z
  workcalc calc --hours 8 --offline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := workingtime.Params{
				Days:  flagValue(cmd, "days", days),
				Hours: flagValue(cmd, "hours", hours),
				Date:  flagValue(cmd, "date", date),
			}
			in, err := workingtime.ValidateParams(params)
			if err != nil {
				return fmt.Errorf("invalid parameters: %s", apperrors.MessageOf(err))
			}

			log := opts.logger(cmd.ErrOrStderr())
			cal, err := calendar.New(calendar.DefaultConfig())
			if err != nil {
				return err
			}
			catalog, err := opts.catalog(log)
			if err != nil {
				return err
			}
			result, err := workingtime.NewService(cal, catalog, log).Calculate(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), workingtime.NewResponse(result))
		},
	}
	cmd.Flags().StringVar(&days, "days", "", "business days to add")
	cmd.Flags().StringVar(&hours, "hours", "", "business hours to add")
	cmd.Flags().StringVar(&date, "date", "", "UTC start instant with Z suffix (default now)")
	return cmd
}

func newHolidaysCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "holidays",
		Short: "Print the holiday catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := opts.catalog(opts.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			items, err := catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, item := range items {
				fmt.Fprintf(out, "%s\t%s\n", item.Date, item.Name)
			}
			return nil
		},
	}
}

func (o *options) logger(w io.Writer) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *options) catalog(log *slog.Logger) (holiday.Service, error) {
	items, err := fallback.Load()
	if err != nil {
		return nil, err
	}
	var source holiday.Source = fallback.NewSource(items)
	fetchTimeout := 10 * time.Second
	if !o.offline {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		fetchTimeout = cfg.Holidays.FetchTimeout
		source = capta.NewClient(cfg.Holidays.URL, fetchTimeout)
	}
	return holiday.NewService(holiday.Config{FetchTimeout: fetchTimeout}, source, holidaystore.NewMemoryStore(), items, log), nil
}

func flagValue(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}
