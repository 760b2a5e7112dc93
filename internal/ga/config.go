package ga

import (
	"fmt"

	"binPack/internal/opt"
)

type Config struct {
	Population     int
	Generations    int
	Elite          int
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64

	// Workers > 1 включает параллельную оценку популяции; результат от этого не зависит
	Workers int
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf(
			"%w: размер популяции должен быть > 1 (получено %d)",
			opt.ErrConfiguration,
			c.Population,
		)
	}
	if c.Generations <= 0 {
		return fmt.Errorf(
			"%w: количество поколений должно быть > 0 (получено %d)",
			opt.ErrConfiguration,
			c.Generations,
		)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf(
			"%w: число элитных особей должно быть в диапазоне [0, population) (получено %d)",
			opt.ErrConfiguration,
			c.Elite,
		)
	}
	if c.TournamentSize <= 0 || c.TournamentSize > c.Population {
		return fmt.Errorf(
			"%w: размер турнира должен быть в диапазоне [1, population] (получено %d)",
			opt.ErrConfiguration,
			c.TournamentSize,
		)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"%w: вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			opt.ErrConfiguration,
			c.CrossoverRate,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"%w: вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			opt.ErrConfiguration,
			c.MutationRate,
		)
	}
	if c.Workers < 0 {
		return fmt.Errorf(
			"%w: число потоков оценки должно быть >= 0 (получено %d)",
			opt.ErrConfiguration,
			c.Workers,
		)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Population:     50,
		Generations:    200,
		Elite:          1,
		TournamentSize: 5,
		CrossoverRate:  1.0,
		MutationRate:   0.1,
		Workers:        0,
	}
}
