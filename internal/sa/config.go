package sa

import (
	"fmt"

	"binPack/internal/opt"
)

type Config struct {
	MaxIterations int

	// InitialTemp <= 0 означает автоматический выбор по начальному решению
	InitialTemp float64
	MinTemp     float64
	Alpha       float64

	// Число итераций без изменения стоимости, после которого фиксируется застревание
	SidewaysThreshold int
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: 1000,

		InitialTemp: 0,
		MinTemp:     0.01,
		Alpha:       0.985,

		SidewaysThreshold: 5,
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
	if c.InitialTemp < 0 {
		return fmt.Errorf(
			"%w: InitialTemp должно быть >= 0 (получено %f)",
			opt.ErrConfiguration,
			c.InitialTemp,
		)
	}
	if c.MinTemp <= 0 {
		return fmt.Errorf(
			"%w: MinTemp должно быть > 0 (получено %f)",
			opt.ErrConfiguration,
			c.MinTemp,
		)
	}
	if c.InitialTemp > 0 && c.MinTemp >= c.InitialTemp {
		return fmt.Errorf(
			"%w: MinTemp должно быть < InitialTemp (получено %f >= %f)",
			opt.ErrConfiguration,
			c.MinTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"%w: alpha должно лежать в интервале (0,1) (получено %f)",
			opt.ErrConfiguration,
			c.Alpha,
		)
	}
	if c.SidewaysThreshold <= 0 {
		return fmt.Errorf(
			"%w: SidewaysThreshold должно быть > 0 (получено %d)",
			opt.ErrConfiguration,
			c.SidewaysThreshold,
		)
	}
	return nil
}
