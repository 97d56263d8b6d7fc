package main

import "github.com/urfave/cli/v3"

var (
	dims     []int64
	cols     []int64
	nnz      int64
	seed     int64
	mode     int64
	scheme   string
	nthreads int64
	valueLo  float64
	valueHi  float64

	logLevel  string
	logFormat string
	debug     bool
)

func commonTensorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntSliceFlag{
			Name:        "dims",
			Aliases:     []string{"d"},
			Usage:       "comma-separated mode dimensions, e.g. 40,50,60",
			Destination: &dims,
		},
		&cli.IntSliceFlag{
			Name:        "cols",
			Usage:       "comma-separated per-mode factor column counts",
			Destination: &cols,
		},
		&cli.IntFlag{
			Name:        "nnz",
			Usage:       "number of synthetic nonzeros to scatter",
			Value:       10000,
			Destination: &nnz,
		},
		&cli.IntFlag{
			Name:        "seed",
			Usage:       "random seed for tensor and factor generation",
			Value:       1,
			Destination: &seed,
		},
		&cli.IntFlag{
			Name:        "mode",
			Aliases:     []string{"m"},
			Usage:       "output mode to contract for",
			Destination: &mode,
		},
		&cli.StringFlag{
			Name:        "scheme",
			Usage:       "CSF allocation scheme (onemode, twomode, allmode)",
			Value:       "onemode",
			Destination: &scheme,
		},
		&cli.IntFlag{
			Name:        "threads",
			Aliases:     []string{"t"},
			Usage:       "worker count (0 = GOMAXPROCS)",
			Destination: &nthreads,
		},
		&cli.FloatFlag{
			Name:        "value-lo",
			Usage:       "lower bound of generated nonzero values",
			Value:       -1,
			Destination: &valueLo,
		},
		&cli.FloatFlag{
			Name:        "value-hi",
			Usage:       "upper bound of generated nonzero values",
			Value:       1,
			Destination: &valueHi,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func toIntSlice(vs []int64) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = int(v)
	}
	return out
}
