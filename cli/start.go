package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/api"
	"github.com/allfs/quadstorvtl/build"
	"github.com/allfs/quadstorvtl/config"
	"github.com/allfs/quadstorvtl/server"
)

var cfg *config.Config

var flagListen string

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "start the server",
	Long: `
Start the VTL administration console.
`,
	Example: `  vtlconsole start --config /etc/vtlconsole.hcl`,
	RunE:    runStart,
}

func init() {
	cobra.OnInitialize(initConfig)

	f := startCmd.Flags()

	f.StringVar(&flagListen,
		"listen", "", "override the listen address from the config file",
	)
}

func initConfig() {
	// flags were parsed by cobra; keep glog from complaining
	flag.CommandLine.Parse(nil)

	if flagDebug {
		// per-event form tracing
		flag.Set("v", "2")
		flag.Set("logtostderr", "true")
	}

	if cfgFile == "" {
		cfg = config.Default()
		return
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config file:", err)
		os.Exit(1)
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	if flagListen != "" {
		cfg.Listen = flagListen
	}

	glog.Infof("init: %s", build.GetInfo().Short())

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	hs := api.Start(srv)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := hs.Shutdown(ctx); err != nil {
		glog.Errorf("shutdown: http: %v", err)
	}

	srv.Shutdown()
	glog.Flush()

	return nil
}
