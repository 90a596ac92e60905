package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type callArgs struct {
	path   string
	method string
	params map[string]string
}

func NewCallCmd(c *Context) *cobra.Command {
	args := &callArgs{}
	subc := &cobra.Command{
		Use:   "call",
		Short: "Call a graph api resource and print the response",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunCall(cmd.Context(), c, args)
		},
	}
	subc.Flags().StringVar(&args.path, "path", "me", "resource path relative to endpoint")
	subc.Flags().StringVarP(&args.method, "method", "m", http.MethodGet, "http method")
	subc.Flags().StringToStringVarP(&args.params, "param", "p", nil, "request param, eg: fields=id,name")
	return subc
}

func onRunCall(ctx context.Context, c *Context, args *callArgs) error {
	if ctx == nil {
		ctx = context.Background()
	}
	call, err := c.Client.NewRestCall(c.Auth)
	if err != nil {
		return err
	}
	call.SetFunction(args.path)
	call.SetMethod(args.method)
	for k, v := range args.params {
		call.SetParam(k, v)
	}
	rsp, err := call.Invoke(ctx)
	if err != nil {
		return fmt.Errorf("invoke call failed, path:%s, err:%w", args.path, err)
	}
	if err := rsp.Decode(nil); err != nil {
		logutil.GetLogger(ctx).Error("call graph api failed", zap.String("path", args.path), zap.Error(err))
		return err
	}
	fmt.Println(string(rsp.Body))
	return nil
}

func init() {
	register(NewCallCmd)
}
