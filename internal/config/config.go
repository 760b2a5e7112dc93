// Package config resolves run options from defaults, an optional YAML file,
// BINPACK_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"binPack/internal/ga"
	"binPack/internal/opt"
	"binPack/internal/sa"
	"binPack/internal/steepest"
	"binPack/internal/stochastic"
)

const EnvPrefix = "BINPACK"

// Algorithm names accepted by --algorithms.
const (
	AlgoSteepest   = "steepest"
	AlgoStochastic = "stochastic"
	AlgoSA         = "sa"
	AlgoGA         = "ga"
)

var Algorithms = []string{AlgoSteepest, AlgoStochastic, AlgoSA, AlgoGA}

type Options struct {
	Algorithms []string `mapstructure:"algorithms"`
	Seed       int64    `mapstructure:"seed"`

	MaxIterations     int     `mapstructure:"max-iterations"`
	MaxPasses         int     `mapstructure:"max-passes"`
	PopulationSize    int     `mapstructure:"population-size"`
	Generations       int     `mapstructure:"generations"`
	Elite             int     `mapstructure:"elite"`
	TournamentSize    int     `mapstructure:"tournament-size"`
	CrossoverRate     float64 `mapstructure:"crossover-rate"`
	MutationRate      float64 `mapstructure:"mutation-rate"`
	Workers           int     `mapstructure:"workers"`
	CoolingAlpha      float64 `mapstructure:"cooling-alpha"`
	MinTemperature    float64 `mapstructure:"min-temperature"`
	InitialTemp       float64 `mapstructure:"initial-temperature"`
	SidewaysThreshold int     `mapstructure:"sideways-threshold"`

	LogLevel     string  `mapstructure:"log-level"`
	LogFormat    string  `mapstructure:"log-format"`
	ProgressRate float64 `mapstructure:"progress-rate"`

	RedisURL     string `mapstructure:"redis-url"`
	RedisChannel string `mapstructure:"redis-channel"`
	DatabaseURL  string `mapstructure:"database-url"`
	MetricsFile  string `mapstructure:"metrics-file"`

	Timeout time.Duration `mapstructure:"timeout"`
}

// Defaults mirrors the DefaultConfig of every strategy package.
func Defaults() Options {
	st := steepest.DefaultConfig()
	sc := stochastic.DefaultConfig()
	an := sa.DefaultConfig()
	gen := ga.DefaultConfig()
	return Options{
		Algorithms: slices.Clone(Algorithms),
		Seed:       1,

		MaxIterations:     st.MaxIterations,
		MaxPasses:         sc.MaxPasses,
		PopulationSize:    gen.Population,
		Generations:       gen.Generations,
		Elite:             gen.Elite,
		TournamentSize:    gen.TournamentSize,
		CrossoverRate:     gen.CrossoverRate,
		MutationRate:      gen.MutationRate,
		Workers:           gen.Workers,
		CoolingAlpha:      an.Alpha,
		MinTemperature:    an.MinTemp,
		InitialTemp:       an.InitialTemp,
		SidewaysThreshold: an.SidewaysThreshold,

		LogLevel:     "info",
		LogFormat:    "console",
		ProgressRate: 2,

		RedisChannel: "binpack:trace",
	}
}

// New returns a viper instance with every option registered as a default and
// environment lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("algorithms", d.Algorithms)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("max-iterations", d.MaxIterations)
	v.SetDefault("max-passes", d.MaxPasses)
	v.SetDefault("population-size", d.PopulationSize)
	v.SetDefault("generations", d.Generations)
	v.SetDefault("elite", d.Elite)
	v.SetDefault("tournament-size", d.TournamentSize)
	v.SetDefault("crossover-rate", d.CrossoverRate)
	v.SetDefault("mutation-rate", d.MutationRate)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("cooling-alpha", d.CoolingAlpha)
	v.SetDefault("min-temperature", d.MinTemperature)
	v.SetDefault("initial-temperature", d.InitialTemp)
	v.SetDefault("sideways-threshold", d.SidewaysThreshold)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("progress-rate", d.ProgressRate)
	v.SetDefault("redis-url", d.RedisURL)
	v.SetDefault("redis-channel", d.RedisChannel)
	v.SetDefault("database-url", d.DatabaseURL)
	v.SetDefault("metrics-file", d.MetricsFile)
	v.SetDefault("timeout", d.Timeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags registers the search and ambient flags on fs and binds them to v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	d := Defaults()
	fs.StringSlice("algorithms", d.Algorithms, "algorithms to run: "+strings.Join(Algorithms, ", "))
	fs.Int64("seed", d.Seed, "random seed (0 selects the default seed)")
	fs.Int("max-iterations", d.MaxIterations, "steepest passes, stochastic candidates per pass, annealing iterations")
	fs.Int("max-passes", d.MaxPasses, "stochastic hill climbing pass cap")
	fs.Int("population-size", d.PopulationSize, "GA population size")
	fs.Int("generations", d.Generations, "GA generation count")
	fs.Int("elite", d.Elite, "GA individuals carried over unchanged")
	fs.Int("tournament-size", d.TournamentSize, "GA tournament size")
	fs.Float64("crossover-rate", d.CrossoverRate, "GA crossover probability")
	fs.Float64("mutation-rate", d.MutationRate, "GA per-gene mutation probability")
	fs.Int("workers", d.Workers, "GA parallel fitness workers (0 or 1 = sequential)")
	fs.Float64("cooling-alpha", d.CoolingAlpha, "annealing cooling factor in (0,1)")
	fs.Float64("min-temperature", d.MinTemperature, "annealing stop temperature")
	fs.Float64("initial-temperature", d.InitialTemp, "annealing start temperature (0 = estimate from the start solution)")
	fs.Int("sideways-threshold", d.SidewaysThreshold, "annealing iterations without cost change counted as stuck")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.String("log-format", d.LogFormat, "log format: json or console")
	fs.Float64("progress-rate", d.ProgressRate, "progress log lines per second (0 disables)")
	fs.String("redis-url", d.RedisURL, "publish trace records to this Redis server")
	fs.String("redis-channel", d.RedisChannel, "Redis pub/sub channel for trace records")
	fs.String("database-url", d.DatabaseURL, "persist runs to this Postgres database")
	fs.String("metrics-file", d.MetricsFile, "write Prometheus metrics to this textfile on exit")
	fs.Duration("timeout", d.Timeout, "per-run time limit (0 = none)")

	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err == nil && f.Name != "config" {
			err = v.BindPFlag(f.Name, f)
		}
	})
	return err
}

// Load reads the optional config file and decodes the merged options.
func Load(v *viper.Viper, file string) (Options, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Options{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	var o Options
	if err := v.Unmarshal(&o); err != nil {
		return Options{}, fmt.Errorf("decode config: %w", err)
	}
	for i, a := range o.Algorithms {
		o.Algorithms[i] = strings.ToLower(strings.TrimSpace(a))
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o Options) Validate() error {
	if len(o.Algorithms) == 0 {
		return fmt.Errorf("%w: no algorithms selected", opt.ErrConfiguration)
	}
	for _, a := range o.Algorithms {
		if !slices.Contains(Algorithms, a) {
			return fmt.Errorf("%w: unknown algorithm %q (available: %s)", opt.ErrConfiguration, a, strings.Join(Algorithms, ", "))
		}
	}
	if o.ProgressRate < 0 {
		return fmt.Errorf("%w: progress-rate must be >= 0 (got %g)", opt.ErrConfiguration, o.ProgressRate)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be >= 0 (got %s)", opt.ErrConfiguration, o.Timeout)
	}
	if err := o.Steepest().Validate(); err != nil {
		return fmt.Errorf("steepest: %w", err)
	}
	if err := o.Stochastic().Validate(); err != nil {
		return fmt.Errorf("stochastic: %w", err)
	}
	if err := o.SA().Validate(); err != nil {
		return fmt.Errorf("sa: %w", err)
	}
	if err := o.GA().Validate(); err != nil {
		return fmt.Errorf("ga: %w", err)
	}
	return nil
}

func (o Options) Steepest() steepest.Config {
	c := steepest.DefaultConfig()
	c.MaxIterations = o.MaxIterations
	return c
}

func (o Options) Stochastic() stochastic.Config {
	return stochastic.Config{MaxIterations: o.MaxIterations, MaxPasses: o.MaxPasses}
}

func (o Options) SA() sa.Config {
	return sa.Config{
		MaxIterations:     o.MaxIterations,
		InitialTemp:       o.InitialTemp,
		MinTemp:           o.MinTemperature,
		Alpha:             o.CoolingAlpha,
		SidewaysThreshold: o.SidewaysThreshold,
	}
}

func (o Options) GA() ga.Config {
	return ga.Config{
		Population:     o.PopulationSize,
		Generations:    o.Generations,
		Elite:          o.Elite,
		TournamentSize: o.TournamentSize,
		CrossoverRate:  o.CrossoverRate,
		MutationRate:   o.MutationRate,
		Workers:        o.Workers,
	}
}
