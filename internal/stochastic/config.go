package stochastic

import (
	"fmt"

	"binPack/internal/opt"
)

type Config struct {
	// Максимальное число кандидатов, проверяемых за один проход
	MaxIterations int
	// Ограничение на число проходов
	MaxPasses int
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: 1000,
		MaxPasses:     1000,
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
	if c.MaxPasses <= 0 {
		return fmt.Errorf(
			"%w: MaxPasses должно быть > 0 (получено %d)",
			opt.ErrConfiguration,
			c.MaxPasses,
		)
	}
	return nil
}
