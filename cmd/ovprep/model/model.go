package model

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/version"
)

func NewOvprepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ovprep",
		Short:   "prepare Open Model Zoo models for OpenVINO inference",
		Version: version.Get().String(),
	}
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewDownloadCmd())
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewInfoCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewBenchmarkCmd())
	cmd.AddCommand(NewDevicesCmd())
	cmd.AddCommand(NewPrepareCmd())
	cmd.AddCommand(NewPackCmd())
	cmd.AddCommand(NewUnpackCmd())
	cmd.AddCommand(NewPublishCmd())
	cmd.AddCommand(NewUnpublishCmd())
	cmd.AddCommand(NewFetchCmd())
	return cmd
}

func BaseContext() (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	if os.Getenv("DEBUG") == "1" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		ctx = logr.NewContext(ctx, stdr.NewWithOptions(log.Default(), stdr.Options{LogCaller: stdr.Error}))
	}
	return ctx, cancel
}
