package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"binPack/internal/config"
	"binPack/internal/ga"
	"binPack/internal/logging"
	"binPack/internal/opt"
	"binPack/internal/rng"
	"binPack/internal/sa"
	"binPack/internal/steepest"
	"binPack/internal/stochastic"
)

// app holds what every subcommand shares once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	opts    config.Options
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), log: zap.NewNop()}
	root := &cobra.Command{
		Use:           "binpack",
		Short:         "Bin packing by local search and genetic algorithms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file")
	if err := config.BindFlags(root.PersistentFlags(), a.v); err != nil {
		panic(err)
	}
	root.AddCommand(newSolveCmd(a), newBenchCmd(a))
	return root
}

func (a *app) init() error {
	opts, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logging.New(opts.LogLevel, opts.LogFormat)
	if err != nil {
		return err
	}
	a.opts, a.log = opts, log
	return nil
}

// newOptimizer builds the named strategy with its own generator seeded by seed.
func newOptimizer(name string, o config.Options, seed int64, observe opt.Observer) (opt.Optimizer, error) {
	r := rng.New(seed)
	switch name {
	case config.AlgoSteepest:
		s, err := steepest.New(o.Steepest(), r)
		if err != nil {
			return nil, err
		}
		s.Observe = observe
		return s, nil
	case config.AlgoStochastic:
		s, err := stochastic.New(o.Stochastic(), r)
		if err != nil {
			return nil, err
		}
		s.Observe = observe
		return s, nil
	case config.AlgoSA:
		s, err := sa.New(o.SA(), r)
		if err != nil {
			return nil, err
		}
		s.Observe = observe
		return s, nil
	case config.AlgoGA:
		s, err := ga.New(o.GA(), r)
		if err != nil {
			return nil, err
		}
		s.Observe = observe
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown algorithm %q", opt.ErrConfiguration, name)
}
