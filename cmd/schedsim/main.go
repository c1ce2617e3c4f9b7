// Command schedsim runs the scheduling simulator, either through the
// interactive menu or as a single batch run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/schedsim"
)

type options struct {
	config    string
	producers int
	buffer    int
	processes int
	quantum   int
	seed      int64
	workload  string
	trace     string
	logLevel  string
	menu      bool
}

func parseOptions(args []string, output io.Writer) (*options, *flag.FlagSet, error) {
	ret := &options{}
	flags := flag.NewFlagSet(schedsim.Name, flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&ret.config, "config", "", "YAML or JSON configuration URL")
	flags.IntVar(&ret.producers, "producers", 0, "number of producer workers (minimum 2)")
	flags.IntVar(&ret.buffer, "buffer", 0, "bounded buffer capacity")
	flags.IntVar(&ret.processes, "processes", 0, "total number of processes to generate")
	flags.IntVar(&ret.quantum, "quantum", 0, "round-robin time quantum")
	flags.Int64Var(&ret.seed, "seed", 0, "descriptor generator seed, 0 picks one from the clock")
	flags.StringVar(&ret.workload, "workload", "", "workload file URL to load before running")
	flags.StringVar(&ret.trace, "trace", "", "write OpenTelemetry spans to this file")
	flags.StringVar(&ret.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&ret.menu, "menu", true, "run the interactive menu")
	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}
	return ret, flags, nil
}

// configure builds the configuration: the -config file (or defaults) with
// explicitly set flags applied on top.
func (o *options) configure(ctx context.Context, fs afs.Service, flags *flag.FlagSet) (*schedsim.Config, error) {
	config := schedsim.DefaultConfig()
	if o.config != "" {
		var err error
		if config, err = schedsim.LoadConfig(ctx, fs, o.config); err != nil {
			return nil, err
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "producers":
			config.Pipeline.Producers = o.producers
		case "buffer":
			config.Pipeline.BufferSize = o.buffer
		case "processes":
			config.Pipeline.TotalProcesses = o.processes
		case "quantum":
			config.Scheduler.Quantum = o.quantum
		case "seed":
			config.Seed = o.seed
		case "log-level":
			config.Logging.Level = strings.ToLower(o.logLevel)
		case "trace":
			config.Tracing.Enabled = o.trace != ""
			config.Tracing.OutputFile = o.trace
		}
	})
	return config, nil
}

func run(ctx context.Context, args []string, input io.Reader, output io.Writer) error {
	opts, flags, err := parseOptions(args, output)
	if err != nil {
		return err
	}
	fs := afs.New()
	config, err := opts.configure(ctx, fs, flags)
	if err != nil {
		return err
	}
	srv, err := schedsim.New(schedsim.WithConfig(config), schedsim.WithWriter(output), schedsim.WithFileSystem(fs))
	if err != nil {
		return err
	}
	runtime := srv.Runtime()
	if opts.workload != "" {
		unsafe, err := runtime.LoadWorkload(ctx, opts.workload)
		if err != nil {
			return err
		}
		for _, id := range unsafe {
			fmt.Fprintf(output, "[WARNING] Process P%d added but would cause unsafe state!\n", id)
		}
	}
	if opts.menu {
		return newMenu(runtime, config, input, output).run(ctx)
	}
	if opts.workload != "" {
		_, err = runtime.Execute(ctx)
		return err
	}
	_, err = runtime.Simulate(ctx)
	return err
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
