package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/gfbgraph/auth"
	"github.com/xxxsen/gfbgraph/cmd/gfbc/config"
	"github.com/xxxsen/gfbgraph/graph"
	"go.uber.org/zap"
)

const (
	defaultConfigFileEnv = "GFBC_CONFIG"
)

var cmds []CreateFunc

type Context struct {
	Client *graph.Client
	Auth   auth.IAuthorizer
	Config *config.Config
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func loadConfig(cfgs []string) (*config.Config, error) {
	var lastErr error = fmt.Errorf("no config file specified")
	for _, cfg := range cfgs {
		if len(cfg) == 0 {
			continue
		}
		c, err := config.Parse(cfg)
		if err != nil {
			lastErr = err
			continue
		}
		return c, nil
	}
	return nil, fmt.Errorf("no valid config file found, last err:%w", lastErr)
}

func initContext(ctx *Context, cfgs []string) error {
	c, err := loadConfig(cfgs)
	if err != nil {
		return err
	}
	ctx.Config = c
	logitem := c.LogInfo
	lg := logger.Init(logitem.File, logitem.Level, int(logitem.FileCount), int(logitem.FileSize), int(logitem.KeepDays), logitem.Console)
	lg.Debug("current available authorizer", zap.Strings("list", auth.List()), zap.String("use", c.AuthKind))
	a, err := auth.Create(c.AuthKind, c.AuthConfig)
	if err != nil {
		return fmt.Errorf("init authorizer failed, kind:%s, err:%w", c.AuthKind, err)
	}
	ctx.Auth = a
	cli, err := graph.New(
		graph.WithEndpoint(c.Endpoint),
		graph.WithUploadPath(c.UploadPath),
		graph.WithAllowMimeTypes(c.AllowMimeTypes),
		graph.WithHTTPClient(&http.Client{Timeout: time.Duration(c.Timeout) * time.Second}),
	)
	if err != nil {
		return fmt.Errorf("init graph client failed, err:%w", err)
	}
	ctx.Client = cli
	return nil
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	var rootCmd = &cobra.Command{
		Use:          "gfbc",
		Short:        "Graph API CLI tool",
		SilenceUsage: true,
	}
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		envConfigFile, _ := os.LookupEnv(defaultConfigFileEnv)
		return initContext(ctx, []string{configFile, envConfigFile, "/etc/gfbc/gfbc_config.json"})
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	return rootCmd
}
