package thor

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _thorconfig{}
)

// _thorconfig is a "hidden" struct, just use `engineConfig`
type _thorconfig struct {
	MaxKeplerIterations int
	KeplerTolerance     float64
	Workers             int
	ParallelThreshold   int
}

// engineConfig returns the engine configuration, loading it on first use.
// Without a THOR_CONFIG directory every knob keeps its default, so the
// engine works out of the box.
func engineConfig() _thorconfig {
	if cfgLoaded {
		return config
	}
	conf := _thorconfig{
		MaxKeplerIterations: 100,
		KeplerTolerance:     1e-15,
		Workers:             runtime.NumCPU(),
		ParallelThreshold:   256,
	}
	if confPath := os.Getenv("THOR_CONFIG"); confPath != "" {
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("%s/conf.toml not found", confPath))
		}
		if viper.IsSet("kepler.max_iterations") {
			conf.MaxKeplerIterations = viper.GetInt("kepler.max_iterations")
		}
		if viper.IsSet("kepler.tolerance") {
			conf.KeplerTolerance = viper.GetFloat64("kepler.tolerance")
		}
		if viper.IsSet("batch.workers") {
			conf.Workers = viper.GetInt("batch.workers")
		}
		if viper.IsSet("batch.threshold") {
			conf.ParallelThreshold = viper.GetInt("batch.threshold")
		}
	}
	cfgLoaded = true
	config = conf
	return config
}
