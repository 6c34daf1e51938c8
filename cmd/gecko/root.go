package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
)

// clientFactory builds the client; a zero timeout keeps the configured http_timeout.
type clientFactory func(baseURL string, timeout time.Duration) (*coingecko.Client, error)

type cli struct {
	out       io.Writer
	newClient clientFactory
	baseURL   string
	timeout   time.Duration
}

func newRootCmd(out io.Writer, factory clientFactory) *cobra.Command {
	c := &cli{out: out, newClient: factory}

	root := &cobra.Command{
		Use:           "gecko",
		Short:         "Query the CoinGecko API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "API root, defaults to COINGECKO_BASE_URL or the public v3 API")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "request timeout, defaults to HTTP_TIMEOUT")

	root.AddCommand(
		c.pingCmd(),
		c.listCmd(),
		c.coinCmd(),
		c.marketsCmd(),
		c.priceCmd(),
	)
	return root
}

func (c *cli) client() (*coingecko.Client, error) {
	client, err := c.newClient(c.baseURL, c.timeout)
	if err != nil {
		return nil, errors.Wrap(err, "create client")
	}
	return client, nil
}

func (c *cli) print(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	raw = append(raw, '\n')
	_, err = c.out.Write(raw)
	return err
}

// boolFlag returns nil unless the flag was set explicitly.
func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}
