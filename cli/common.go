package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"mit.edu/dsg/qep"
	"mit.edu/dsg/qep/source"
)

// newQEP connects to the configured database and returns the pipeline along
// with a function releasing the connection.
func newQEP(ctx context.Context) (*qep.QEP, func(), error) {
	src, err := source.NewPostgres(ctx, cfg.Database.ConnString(), time.Duration(cfg.Database.ExplainTimeout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to plan source: %w", err)
	}
	return qep.New(src), src.Close, nil
}

func readPlanFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return data, nil
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
