package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/boristopalov/gambit/pkg/core"
)

var csvHeader = []string{
	"generation",
	"lifespan",
	"rewards",
	"punishments",
	"reason",
	"threshold",
	"final_consecutive_punishments",
}

// WriteCSV writes one row per completed generation
func WriteCSV(path string, result *core.SimulationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range result.Records {
		row := []string{
			strconv.Itoa(r.Generation),
			strconv.Itoa(r.Lifespan),
			strconv.Itoa(r.Rewards),
			strconv.Itoa(r.Punishments),
			string(r.Reason),
			strconv.Itoa(r.Threshold),
			strconv.Itoa(r.FinalConsecutivePunishments),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
