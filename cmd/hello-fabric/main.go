/*
 * Copyright 2025 The Fabric Emulation Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// hello-fabric is the first touch of emulated fabric-attached memory. Run it
// inside a VM created by the configurator; it writes the VM's uname record
// into the start of the fabric emulation device.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FabricAttachedMemory/Emulation/internal/config"
	"github.com/FabricAttachedMemory/Emulation/internal/logging"
	"github.com/FabricAttachedMemory/Emulation/internal/metrics"
	"github.com/FabricAttachedMemory/Emulation/pkg/fabric"
)

var Version = "dev"

type app struct {
	cfg      *config.Config
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Collector
	stdout   io.Writer
	stderr   io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "hello-fabric",
		Short:   "Write this VM's identification into the fabric emulation device",
		Version: Version,
		// Positional arguments are accepted and ignored.
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.touch(cmd.Context())
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.Device, "device", a.cfg.Device, "emulation device to map")
	flags.StringVar(&a.cfg.HostPath, "host-path", a.cfg.HostPath, "backing file of the device on the VM host")
	flags.IntVar(&a.cfg.RegionSize, "size", a.cfg.RegionSize, "number of bytes to map")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "diagnostic log level (debug, info, warn, error)")
	flags.BoolVar(&a.cfg.LogColor, "log-color", a.cfg.LogColor, "colour diagnostic level names")
	root.Flags().BoolVar(&a.cfg.Create, "create", a.cfg.Create, "create and size the device file if it is missing")
	root.Flags().StringVar(&a.cfg.MetricsTextfile, "metrics-textfile", a.cfg.MetricsTextfile, "write touch metrics to this node exporter textfile")

	root.AddCommand(newInspectCmd(a), newServeCmd(a))
	return root
}

func (a *app) setup() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.New(logging.Config{Level: a.cfg.LogLevel, Output: a.stderr, Color: a.cfg.LogColor})
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.cfg.LogLevel, err)
	}
	a.log = log
	a.registry = prometheus.NewRegistry()
	a.metrics, err = metrics.New(a.registry)
	return err
}

func (a *app) touch(ctx context.Context) error {
	start := time.Now()
	report, err := fabric.Touch(ctx, fabric.Options{
		Device: a.cfg.Device,
		Size:   a.cfg.RegionSize,
		Create: a.cfg.Create,
		Logger: a.log,
	})
	if err != nil {
		a.metrics.ObserveFailure(fabric.FailureLabel(err), time.Since(start))
	} else {
		a.metrics.ObserveSuccess(report.Elapsed, time.Now())
	}
	a.writeMetrics()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.stdout, fabric.Message(a.cfg.HostPath))
	return err
}

func (a *app) writeMetrics() {
	if a.cfg.MetricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(a.cfg.MetricsTextfile, a.registry); err != nil {
		a.log.Warn("writing metrics textfile", zap.String("path", a.cfg.MetricsTextfile), zap.Error(err))
	}
}

// execute runs the command line and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	a := &app{cfg: cfg, log: logging.Nop(), stdout: stdout, stderr: stderr}

	root := newRootCmd(a)
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	_ = a.log.Sync()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
