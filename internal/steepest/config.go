package steepest

import (
	"fmt"

	"binPack/internal/opt"
)

type Config struct {
	// Максимальное число полных проходов по окрестности
	MaxIterations int
	// Обмен принимается, только если стоимость падает больше чем на Eps
	Eps float64
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: 1000,
		Eps:           1e-9,
	}
}

func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf(
			"%w: MaxIterations должно быть > 0 (получено %d)",
			opt.ErrConfiguration,
			c.MaxIterations,
		)
	}
	if c.Eps < 0 {
		return fmt.Errorf(
			"%w: Eps должно быть >= 0 (получено %g)",
			opt.ErrConfiguration,
			c.Eps,
		)
	}
	return nil
}
