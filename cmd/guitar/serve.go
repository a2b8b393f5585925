package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-guitar/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveAddr  string
	serveDebug bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "listen address")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "human readable development logging")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the keyboard page",
	Long:  `Serves the keyboard page at / and the raw tables at /strings and /song.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(serveDebug)
		if err != nil {
			return err
		}
		defer log.Sync()

		synth, err := newSynthesizer()
		if err != nil {
			return err
		}
		p := synth.Params()
		log.Info("synthesizer ready",
			zap.Int("num_samples", p.NumSamples),
			zap.Int("sample_rate", p.SampleRate),
			zap.Int("quant", p.Quant),
			zap.Float64("decay", p.Decay),
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Navigate to http://localhost%s/\n", displayAddr(serveAddr))
		return server.New(synth, log).ListenAndServe(ctx, serveAddr)
	},
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return addr
	}
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return addr
}
