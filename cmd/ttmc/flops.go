package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ttmc/internal/synth"
	"github.com/samcharles93/ttmc/pkg/ttmc"
)

func flopsCmd() *cli.Command {
	return &cli.Command{
		Name:  "flops",
		Usage: "fill and print the flop table for a synthetic tensor",
		Flags: commonTensorFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyBenchConfig(cmd, cfg)

			if len(dims) < 3 {
				return cli.Exit("flops: --dims must list at least 3 mode sizes", 1)
			}
			spec := synth.Spec{Dims: toIntSlice(dims), NNZ: int(nnz), Seed: seed, Cols: toIntSlice(cols), Lo: valueLo, Hi: valueHi}

			coord := synth.GenerateCoord(spec)
			nfactors := make([]int, len(spec.Dims))
			for m, d := range spec.Dims {
				k := d
				if m < len(spec.Cols) && spec.Cols[m] > 0 {
					k = spec.Cols[m]
				}
				nfactors[m] = k
			}

			table := ttmc.FillFlopTable(coord, nfactors)
			return ttmc.WriteFlopTable(os.Stdout, table)
		},
	}
}
