package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shiroemons/go-msdtext/internal/msdtext/app"
	"github.com/shiroemons/go-msdtext/internal/msdtext/config"
)

func newRootCmd(stdout io.Writer) *cobra.Command {
	cfg := config.NewConfig()

	cmd := &cobra.Command{
		Use:   "msdtext [flags] <file.msd> [file.msd ...]",
		Short: "Extract the text table of MSD resource files",
		Long: `msdtext reads MSD text resource files and writes every text entry
to <file>.txt as lines of the form 0x2a: "text".

The text encoding (Shift-JIS or ANSI) is detected from the first entry
unless --encoding is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// バージョン表示の処理
			if cfg.ShowVersion {
				fmt.Fprintln(stdout, config.VersionString())
				return nil
			}
			if len(args) == 0 {
				return cmd.Usage()
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cfg.Inputs = args

			// アプリケーションの実行
			application := app.NewWithOptions(cfg, app.Options{Stdout: stdout})
			return application.Run(cmd.Context(), cfg.Inputs)
		},
	}
	cmd.SetOut(stdout)
	config.BindFlags(cmd.Flags(), cfg)

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		stop()
		os.Exit(1)
	}
}
