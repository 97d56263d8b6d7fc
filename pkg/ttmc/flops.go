package ttmc

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/samcharles93/ttmc/internal/kernel"
)

// FlopTable is the full ttmc_fill_flop_tbl result.
type FlopTable = kernel.FlopTable

// FillFlopTable builds, for every mode of c, a CSF sorted smallest
// dimension first with that mode moved to the leaf, and evaluates every
// mode's TTMc cost against it, along with the CSF-1/CSF-2/CSF-A/custom/
// coordinate summaries derived from the resulting table. nfactors holds
// the per-mode factor column count a real TTMc call against c would use.
func FillFlopTable(c *Coord, nfactors []int) *FlopTable {
	return kernel.FillFlopTable(c, nfactors)
}

// WriteFlopTable encodes a flop table as JSON using goccy/go-json, which
// this module uses in place of encoding/json for the potentially large
// per-mode/per-scheme tables a higher-order tensor produces.
func WriteFlopTable(w io.Writer, table *FlopTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(table)
}
