package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
)

func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, client *coingecko.Client) (any, error)) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := fn(ctx, client)
	if err != nil {
		return err
	}
	return c.print(out)
}

func (c *cli) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check API status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, client *coingecko.Client) (any, error) {
				resp, err := client.Ping(ctx)
				return resp, errors.Wrap(err, "ping")
			})
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var req coingecko.CoinsListRequest
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every supported coin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, client *coingecko.Client) (any, error) {
				coins, err := client.CoinsList(ctx, req)
				return coins, errors.Wrap(err, "list coins")
			})
		},
	}
	cmd.Flags().BoolVar(&req.IncludePlatform, "include-platform", false, "include platform contract addresses")
	return cmd
}

func (c *cli) coinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coin <id>",
		Short: "Show a coin's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := coinInfoRequest(cmd)
			return c.run(cmd, func(ctx context.Context, client *coingecko.Client) (any, error) {
				info, err := client.CoinInfo(ctx, args[0], req)
				return info, errors.Wrapf(err, "coin info for %s", args[0])
			})
		},
	}
	f := cmd.Flags()
	f.Bool("localization", false, "include localized names")
	f.Bool("tickers", false, "include tickers")
	f.Bool("market-data", false, "include market data")
	f.Bool("community-data", false, "include community data")
	f.Bool("developer-data", false, "include developer data")
	f.Bool("sparkline", false, "include the 7 day sparkline")
	return cmd
}

func coinInfoRequest(cmd *cobra.Command) coingecko.CoinInfoRequest {
	return coingecko.CoinInfoRequest{
		Localization:  boolFlag(cmd, "localization"),
		Tickers:       boolFlag(cmd, "tickers"),
		MarketData:    boolFlag(cmd, "market-data"),
		CommunityData: boolFlag(cmd, "community-data"),
		DeveloperData: boolFlag(cmd, "developer-data"),
		Sparkline:     boolFlag(cmd, "sparkline"),
	}
}

type marketFlags struct {
	vsCurrency  string
	ids         []string
	category    string
	order       string
	perPage     int
	page        int
	priceChange string
}

func (c *cli) marketsCmd() *cobra.Command {
	var mf marketFlags
	cmd := &cobra.Command{
		Use:   "markets",
		Short: "List coins with market data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := mf.request(cmd)
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, client *coingecko.Client) (any, error) {
				markets, err := client.Markets(ctx, req)
				return markets, errors.Wrapf(err, "markets in %s", req.VsCurrency)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&mf.vsCurrency, "vs-currency", "", "target currency (required)")
	f.StringSliceVar(&mf.ids, "ids", nil, "coin ids to restrict to")
	f.StringVar(&mf.category, "category", "", "category filter")
	f.StringVar(&mf.order, "order", "", "sort order, e.g. market_cap_desc")
	f.IntVar(&mf.perPage, "per-page", 0, "results per page (1-250)")
	f.IntVar(&mf.page, "page", 0, "page number")
	f.Bool("sparkline", false, "include the 7 day sparkline")
	f.StringVar(&mf.priceChange, "price-change", "", "extra price change window, e.g. 7d")
	_ = cmd.MarkFlagRequired("vs-currency")
	return cmd
}

func (mf marketFlags) request(cmd *cobra.Command) (coingecko.MarketRequest, error) {
	req := coingecko.MarketRequest{
		VsCurrency: mf.vsCurrency,
		IDs:        mf.ids,
		Category:   mf.category,
		PerPage:    mf.perPage,
		Page:       mf.page,
		Sparkline:  boolFlag(cmd, "sparkline"),
	}
	if mf.order != "" {
		order, err := coingecko.ParseOrder(mf.order)
		if err != nil {
			return req, errors.Wrap(err, "--order")
		}
		req.Order = order
	}
	if mf.priceChange != "" {
		window, err := coingecko.ParsePriceChangePercentage(mf.priceChange)
		if err != nil {
			return req, errors.Wrap(err, "--price-change")
		}
		req.PriceChangePercentage = window
	}
	return req, nil
}

func (c *cli) priceCmd() *cobra.Command {
	var req coingecko.SimplePriceRequest
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Current price of coins in one or more currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, client *coingecko.Client) (any, error) {
				prices, err := client.SimplePrice(ctx, req)
				return prices, errors.Wrap(err, "simple price")
			})
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&req.IDs, "ids", nil, "coin ids (required)")
	f.StringSliceVar(&req.VsCurrencies, "vs-currencies", nil, "target currencies (required)")
	f.BoolVar(&req.IncludeMarketCap, "market-cap", false, "include market cap")
	f.BoolVar(&req.Include24hrVol, "24h-vol", false, "include 24h volume")
	f.BoolVar(&req.Include24hrChange, "24h-change", false, "include 24h change")
	f.BoolVar(&req.IncludeLastUpdatedAt, "last-updated", false, "include last updated timestamp")
	f.StringVar(&req.Precision, "precision", "", "decimal places, or full")
	_ = cmd.MarkFlagRequired("ids")
	_ = cmd.MarkFlagRequired("vs-currencies")
	return cmd
}
