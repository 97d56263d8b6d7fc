package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ttmc/internal/csf"
	"github.com/samcharles93/ttmc/internal/logger"
	"github.com/samcharles93/ttmc/internal/synth"
	"github.com/samcharles93/ttmc/pkg/ttmc"
)

func benchCmd() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "run a synthetic TTMc benchmark",
		Flags: append(commonTensorFlags(), loggingFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyBenchConfig(cmd, cfg)

			log := logger.FromContext(ctx)
			if len(dims) < 3 {
				return cli.Exit("bench: --dims must list at least 3 mode sizes", 1)
			}

			spec := synth.Spec{Dims: toIntSlice(dims), NNZ: int(nnz), Seed: seed, Cols: toIntSlice(cols), Lo: valueLo, Hi: valueHi}
			schemeVal, err := parseSchemeName(scheme)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			coord := synth.GenerateCoord(spec)
			factorData := synth.GenerateFactors(spec)
			factors := make([]*ttmc.Mat, len(factorData))
			for m, data := range factorData {
				k := len(data) / spec.Dims[m]
				factors[m] = ttmc.NewMatFromData(spec.Dims[m], k, data)
			}

			natural := make([]int, len(spec.Dims))
			for i := range natural {
				natural[i] = i
			}
			var set *csf.Set
			switch schemeVal {
			case csf.TwoMode:
				set = &csf.Set{Scheme: schemeVal, Tensors: []*csf.Tensor{
					synth.BuildCSF(coord, natural),
					synth.BuildCSF(coord, rotateModes(natural, len(natural)-1)),
				}}
			case csf.AllMode:
				trees := make([]*csf.Tensor, len(natural))
				for m := range natural {
					perm := append(make([]int, 0, len(natural)), m)
					for o := range natural {
						if o != m {
							perm = append(perm, o)
						}
					}
					trees[m] = synth.BuildCSF(coord, perm)
				}
				set = &csf.Set{Scheme: schemeVal, Tensors: trees}
			default:
				set = &csf.Set{Scheme: csf.OneMode, Tensors: []*csf.Tensor{synth.BuildCSF(coord, natural)}}
			}

			opts := ttmc.Options{NThreads: int(nthreads), CSFAlloc: schemeVal}
			start := time.Now()
			y, err := ttmc.Ttmc(log, set, factors, int(mode), opts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("bench: %v", err), 1)
			}
			elapsed := time.Since(start)

			log.Info("bench complete", "mode", mode, "scheme", scheme, "rows", y.Rows, "cols", y.Cols, "elapsed", elapsed.String())
			fmt.Printf("mode=%d scheme=%s rows=%d cols=%d elapsed=%s\n", mode, scheme, y.Rows, y.Cols, elapsed)
			return nil
		},
	}
}

func rotateModes(natural []int, start int) []int {
	n := len(natural)
	out := make([]int, n)
	for i := range out {
		out[i] = natural[(start+i)%n]
	}
	return out
}

func parseSchemeName(s string) (csf.AllocScheme, error) {
	switch s {
	case "", "onemode":
		return csf.OneMode, nil
	case "twomode":
		return csf.TwoMode, nil
	case "allmode":
		return csf.AllMode, nil
	default:
		return csf.OneMode, fmt.Errorf("unknown scheme %q", s)
	}
}
