// cmd/modpoll/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"go.bug.st/serial"

	"github.com/tamzrod/modpoll/internal/cli"
	"github.com/tamzrod/modpoll/internal/config"
	"github.com/tamzrod/modpoll/internal/poller"
	"github.com/tamzrod/modpoll/internal/status"
)

const progName = "modpoll"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes one modpoll invocation and returns the process exit status.
func run(args []string, stdout io.Writer) int {
	opts, err := cli.Parse(args)
	if err != nil {
		log.Error(err)
		cli.Usage(os.Stderr, progName)
		return 1
	}

	switch {
	case opts.Help:
		cli.Usage(stdout, progName)
		return 0
	case opts.Version:
		fmt.Fprintln(stdout, progName, cli.Version)
		return 0
	}

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if opts.ListPorts {
		return listPorts(stdout)
	}

	// --------------------
	// Load + validate profile
	// --------------------

	profile, err := loadProfile(opts.ConfigPath)
	if err != nil {
		log.Error("config load failed", "path", opts.ConfigPath, "err", err)
		return 1
	}

	// --------------------
	// Backend
	// --------------------

	b, rejected, err := cli.BuildBackend(opts, profile)
	if b != nil {
		defer b.Destroy()
	}
	for _, e := range rejected {
		log.Error(e)
	}
	if err != nil {
		log.Error(err)
		return 1
	}
	if len(rejected) > 0 {
		return 1
	}

	sess, err := cli.BuildSession(opts, profile)
	if err != nil {
		log.Error(err)
		return 1
	}

	rq, err := cli.BuildRequest(opts)
	if err != nil {
		log.Error(err)
		return 1
	}

	mbCtx, err := b.CreateContext()
	if err != nil {
		log.Error("context build failed", "backend", b, "err", err)
		return 1
	}
	mbCtx.SetSlave(sess.Slave)
	mbCtx.SetTimeout(sess.Timeout)
	if opts.Debug {
		mbCtx.SetLogger(log.StandardLog())
	}
	defer mbCtx.Close()

	// --------------------
	// Connection
	// --------------------

	if opts.Listen {
		log.Debug("listen mode", "backend", b)
		if err := b.Listen(mbCtx); err != nil {
			log.Error("listen failed", "backend", b, "err", err)
			return 1
		}
		defer b.CloseConn()
	} else {
		log.Debug("connecting", "addr", mbCtx.Address())
		if err := mbCtx.Connect(); err != nil {
			log.Error("connect failed", "addr", mbCtx.Address(), "err", err)
			return 1
		}
	}

	// --------------------
	// Poll
	// --------------------

	client, err := b.Client(mbCtx)
	if err != nil {
		log.Error("client build failed", "backend", b, "err", err)
		return 1
	}

	cfg := cli.PollConfig(opts, rq)
	p, err := poller.Build(cfg, client)
	if err != nil {
		log.Error("poller build failed", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap := drain(ctx, p, stdout, cfg.Count != 1)
	if snap.Health == status.HealthError {
		return 1
	}
	return 0
}

// drain runs the poller to completion, printing every result and tracking health.
func drain(ctx context.Context, p *poller.Poller, stdout io.Writer, repeating bool) status.Snapshot {
	out := make(chan poller.PollResult)
	go p.Run(ctx, out)

	var snap status.Snapshot
	for res := range out {
		if repeating {
			fmt.Fprintf(stdout, "-- poll %d --\n", res.Seq)
		}
		if res.Err != nil {
			log.Error("poll failed", "fc", res.FC, "addr", res.Address, "err", res.Err)
		} else {
			printResult(stdout, res)
		}

		if snap.Update(res.At, res.Err) && repeating {
			log.Info("device health changed", status.Encode(snap, time.Now())...)
		}
	}

	if repeating {
		log.Info("polling stopped", status.Encode(snap, time.Now())...)
	}
	return snap
}

func loadProfile(path string) (*config.Config, error) {
	if path == "" {
		return nil, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)
	return cfg, nil
}

func listPorts(stdout io.Writer) int {
	ports, err := serial.GetPortsList()
	if err != nil {
		log.Error("serial port discovery failed", "err", err)
		return 1
	}
	if len(ports) == 0 {
		log.Warn("no serial ports found")
		return 0
	}
	for _, p := range ports {
		fmt.Fprintln(stdout, p)
	}
	return 0
}
