package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	models "StockDesk/internal/domain/models"
	domrepo "StockDesk/internal/domain/repository"
	"StockDesk/internal/service/chart"
	"StockDesk/internal/usecase"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "Trading API client",
		Long:          `stockctl reads quotes, candles and positions and places market orders against the simulated MOEX trading API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flags
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (optional)")
	rootCmd.PersistentFlags().StringVarP(&opts.baseURL, "base-url", "u", "", "Trading API base URL (defaults to STOCKDESK_UPSTREAM_URL)")
	rootCmd.PersistentFlags().StringVarP(&opts.token, "token", "t", "", "Access token (defaults to STOCKDESK_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	// Subcommands
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(lastCmd(opts))
	rootCmd.AddCommand(candlesCmd(opts))
	rootCmd.AddCommand(chartCmd(opts))
	rootCmd.AddCommand(positionCmd(opts))
	rootCmd.AddCommand(tradeCmd(opts, models.SideBuy))
	rootCmd.AddCommand(tradeCmd(opts, models.SideSell))
	rootCmd.AddCommand(meCmd(opts))
	rootCmd.AddCommand(portfolioCmd(opts))
	rootCmd.AddCommand(leaderboardCmd(opts))
	rootCmd.AddCommand(popularCmd(opts))
	rootCmd.AddCommand(loginCmd(opts))
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stockctl version %s\n", version)
		},
	}
}

func lastCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "last SECID",
		Short: "Print the last traded price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			secid := secidArg(args[0])
			last := c.market.FetchLast(cmd.Context(), secid)
			if last == nil {
				return models.ErrNoLastPrice
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"secid": secid, "last": *last})
		},
	}
}

func candlesCmd(opts *globalOptions) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "candles SECID",
		Short: "Print daily candles for a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			res := c.candles.GetCandles(cmd.Context(), usecase.GetCandlesParams{
				Secid:  secidArg(args[0]),
				Period: domrepo.NormalizePeriod(period, domrepo.Period(c.cfg.Page.DefaultPeriod)),
			})
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "", "Period: 7d, 1m, 3m, 6m, 1y, ytd, max")
	return cmd
}

func chartCmd(opts *globalOptions) *cobra.Command {
	var period, chartType string
	cmd := &cobra.Command{
		Use:   "chart SECID",
		Short: "Print the chart table for a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			res := c.candles.GetCandles(cmd.Context(), usecase.GetCandlesParams{
				Secid:  secidArg(args[0]),
				Period: domrepo.NormalizePeriod(period, domrepo.Period(c.cfg.Page.DefaultPeriod)),
			})
			return printJSON(cmd.OutOrStdout(), chart.Build(models.ParseChartType(chartType), res.Candles))
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "", "Period: 7d, 1m, 3m, 6m, 1y, ytd, max")
	cmd.Flags().StringVar(&chartType, "type", "candles", "Chart type: candles or line")
	return cmd
}

func positionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "position SECID",
		Short: "Print the held quantity and average cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			sess, err := c.session()
			if err != nil {
				return err
			}
			pos, err := c.positions.LookupPosition(cmd.Context(), sess, secidArg(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), pos)
		},
	}
}

func tradeCmd(opts *globalOptions, side models.Side) *cobra.Command {
	verb := strings.ToLower(string(side))
	return &cobra.Command{
		Use:   verb + " SECID QTY",
		Short: "Place a market " + verb + " order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			sess, err := c.session()
			if err != nil {
				return err
			}
			res, err := c.trades.Submit(cmd.Context(), sess, string(side), secidArg(args[0]), args[1])
			if err != nil {
				return err
			}
			warn(cmd.ErrOrStderr(), "profile", res.ProfileErr)
			warn(cmd.ErrOrStderr(), "position", res.PositionErr)
			warn(cmd.ErrOrStderr(), "last price", res.LastErr)
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func meCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Print the signed-in user and cash balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			sess, err := c.session()
			if err != nil {
				return err
			}
			p, err := c.accounts.Profile(cmd.Context(), sess)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func portfolioCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Print the portfolio summary and positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			sess, err := c.session()
			if err != nil {
				return err
			}
			p, err := c.accounts.Portfolio(cmd.Context(), sess)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func leaderboardCmd(opts *globalOptions) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top accounts by equity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			items, err := c.accounts.Leaderboard(cmd.Context(), top)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "Number of entries")
	return cmd
}

func popularCmd(opts *globalOptions) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Print today's most traded instruments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			items, err := c.market.FetchPopular(cmd.Context(), top)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().IntVar(&top, "top", 15, "Number of entries")
	return cmd
}

func loginCmd(opts *globalOptions) *cobra.Command {
	var payloadPath string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange a Telegram login payload for an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCore(opts)
			if err != nil {
				return err
			}
			var r io.Reader = cmd.InOrStdin()
			if payloadPath != "" && payloadPath != "-" {
				f, err := os.Open(payloadPath)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var payload models.TelegramAuth
			if err := json.NewDecoder(r).Decode(&payload); err != nil {
				return fmt.Errorf("read payload: %w", err)
			}
			creds, err := c.auth.LoginTelegram(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), creds)
		},
	}
	cmd.Flags().StringVarP(&payloadPath, "payload", "f", "-", "Telegram widget payload JSON file, - for stdin")
	return cmd
}

func warn(w io.Writer, what string, err error) {
	if err != nil {
		fmt.Fprintf(w, "warning: %s refresh failed: %v\n", what, err)
	}
}

func secidArg(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
