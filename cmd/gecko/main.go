package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/samvad-hq/coingecko-harvester/internal/config"
	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
	"github.com/samvad-hq/coingecko-harvester/pkg/httpclient"
)

func main() {
	if err := newRootCmd(os.Stdout, defaultClient).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// defaultClient builds a client from the same environment the harvester reads.
func defaultClient(baseURL string, timeout time.Duration) (*coingecko.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPTimeout = timeout
	}
	transport := httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
	return coingecko.NewClient(transport, coingecko.Options{
		BaseURL: cfg.BaseURL,
		Headers: cfg.APIHeaders(),
	}), nil
}
