package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/gfbgraph/vfile"
	"go.uber.org/zap"
)

type checkArgs struct {
	files []string
}

func NewCheckCmd(c *Context) *cobra.Command {
	args := &checkArgs{}
	subc := &cobra.Command{
		Use:   "check",
		Short: "Check whether files can be uploaded",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunCheck(cmd.Context(), c, args)
		},
	}
	subc.Flags().StringSliceVarP(&args.files, "file", "f", nil, "file path or uri to check, can be repeated")
	return subc
}

func onRunCheck(ctx context.Context, c *Context, args *checkArgs) error {
	if ctx == nil {
		ctx = context.Background()
	}
	bad := 0
	for _, file := range args.files {
		f, err := vfile.New(file)
		if err != nil {
			logutil.GetLogger(ctx).Error("resolve file failed", zap.String("file", file), zap.Error(err))
			bad++
			continue
		}
		ok := c.Client.IsUploadable(ctx, f)
		_ = f.Close()
		logutil.GetLogger(ctx).Info("check file", zap.String("uri", f.URI()), zap.Bool("uploadable", ok))
		if !ok {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("found %d file(s) not uploadable", bad)
	}
	return nil
}

func init() {
	register(NewCheckCmd)
}
