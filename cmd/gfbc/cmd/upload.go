package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/gfbgraph/graph"
	"github.com/xxxsen/gfbgraph/vfile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type uploadArgs struct {
	files  []string
	params map[string]string
	node   string
}

func NewUploadCmd(c *Context) *cobra.Command {
	args := &uploadArgs{}
	subc := &cobra.Command{
		Use:   "upload",
		Short: "Upload local files as multipart form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunUpload(cmd.Context(), c, args)
		},
	}
	subc.Flags().StringSliceVarP(&args.files, "file", "f", nil, "local file to upload, can be repeated")
	subc.Flags().StringToStringVarP(&args.params, "param", "p", nil, "extra form field, eg: message=hello")
	subc.Flags().StringVar(&args.node, "node", graph.DefaultNode, "target node of the upload")
	return subc
}

func uploadOne(ctx context.Context, c *Context, args *uploadArgs, file string) error {
	f, err := vfile.New(file)
	if err != nil {
		return err
	}
	if !c.Client.IsUploadable(ctx, f) {
		_ = f.Close()
		return fmt.Errorf("file is not uploadable, file:%s", file)
	}
	start := time.Now()
	var result []byte
	status, err := c.Client.Upload(ctx, c.Auth, f, args.params, graph.WithNode(args.node), graph.WithResultReceiver(func(rsp []byte) {
		result = rsp
	}))
	if err != nil {
		return fmt.Errorf("upload file failed, file:%s, status:%d, err:%w", file, status, err)
	}
	if status/100 != 2 {
		return fmt.Errorf("upload file failed, file:%s, status:%d, rsp:%s", file, status, string(result))
	}
	logutil.GetLogger(ctx).Info("upload file succ", zap.String("file", file), zap.Int("status", status),
		zap.String("rsp", string(result)), zap.Duration("cost", time.Since(start)))
	return nil
}

func onRunUpload(ctx context.Context, c *Context, args *uploadArgs) error {
	if len(args.files) == 0 {
		return fmt.Errorf("no upload file found")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.Config.Thread)
	for _, file := range args.files {
		file := file
		eg.Go(func() error {
			return uploadOne(subctx, c, args, file)
		})
	}
	if err := eg.Wait(); err != nil {
		logutil.GetLogger(ctx).Error("upload files failed", zap.Error(err))
		return err
	}
	return nil
}

func init() {
	register(NewUploadCmd)
}
