package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/gfbgraph/mockgraph"
	"go.uber.org/zap"
)

type mockArgs struct {
	bind      string
	version   string
	tokens    []string
	appSecret string
	logLevel  string
}

func NewMockCmd(_ *Context) *cobra.Command {
	args := &mockArgs{}
	subc := &cobra.Command{
		Use:   "mock",
		Short: "Run a local mock graph api server",
		// the mock server needs no client config
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunMock(args)
		},
	}
	subc.Flags().StringVar(&args.bind, "bind", ":8080", "listen address")
	subc.Flags().StringVar(&args.version, "version", "v2.10", "api version prefix")
	subc.Flags().StringSliceVar(&args.tokens, "token", nil, "accepted access token, empty means accept any")
	subc.Flags().StringVar(&args.appSecret, "app-secret", "", "require appsecret_proof signed with this secret")
	subc.Flags().StringVar(&args.logLevel, "log-level", "debug", "log level")
	return subc
}

func onRunMock(args *mockArgs) error {
	lg := logger.Init("", args.logLevel, 0, 0, 0, true)
	svr := mockgraph.New(
		mockgraph.WithVersion(args.version),
		mockgraph.WithTokens(args.tokens...),
		mockgraph.WithAppSecret(args.appSecret),
	)
	lg.Info("start mock graph server", zap.String("bind", args.bind), zap.String("version", args.version),
		zap.Int("token_count", len(args.tokens)), zap.Bool("check_proof", len(args.appSecret) > 0))
	return svr.Run(args.bind)
}

func init() {
	register(NewMockCmd)
}
