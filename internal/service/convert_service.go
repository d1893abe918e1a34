package service

import (
	"path/filepath"
	"strings"

	"github.com/VASCOSORO/soopbeta/internal/normalizer"
	"github.com/VASCOSORO/soopbeta/internal/tabular"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
)

// ConvertRequest describes one ad hoc file conversion: a delimited source,
// optional column operations, and a target file. Unlike the catalog import,
// columns the caller did not touch are preserved verbatim.
type ConvertRequest struct {
	Source      string                  `json:"source"`
	Target      string                  `json:"target"`
	Delimiter   string                  `json:"delimiter,omitempty"`
	Encoding    string                  `json:"encoding,omitempty"`
	Renames     []normalizer.Rename     `json:"renames,omitempty"`
	Drop        []string                `json:"drop,omitempty"`
	Add         []normalizer.ColumnSpec `json:"add,omitempty"`
	Identifiers []string                `json:"identifiers,omitempty"`
}

// ConvertResult reports what a conversion produced.
type ConvertResult struct {
	Target  string   `json:"target"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// ConvertServiceInterface is the free-form CSV-to-spreadsheet converter.
type ConvertServiceInterface interface {
	Convert(req ConvertRequest) (*ConvertResult, error)
}

// ConvertService implements ConvertServiceInterface. It is stateless; each
// conversion is read-transform-write.
type ConvertService struct {
	logger *logger.Logger
}

// NewConvertService creates a converter service.
func NewConvertService(logger *logger.Logger) *ConvertService {
	return &ConvertService{logger: logger.WithComponent("convert_service")}
}

// Convert reads the source, applies the free-form normalization path and
// writes the target. A .csv target is written as delimited text; anything
// else becomes an xlsx workbook.
func (s *ConvertService) Convert(req ConvertRequest) (*ConvertResult, error) {
	s.logger.Info("Converting file", "source", req.Source, "target", req.Target)

	opts := tabular.ReadOptions{Encoding: req.Encoding}
	for _, r := range req.Delimiter {
		opts.Delimiter = r
		break
	}

	table, err := tabular.ReadDelimited(req.Source, opts)
	if err != nil {
		s.logger.Error("Conversion failed reading source", "source", req.Source, "error", err)
		return nil, err
	}

	out := normalizer.Apply(table, normalizer.Schema{
		Target:      req.Add,
		Renames:     req.Renames,
		Drop:        req.Drop,
		Identifiers: req.Identifiers,
	})

	if strings.EqualFold(filepath.Ext(req.Target), ".csv") {
		err = tabular.WriteDelimited(out, req.Target, opts.Delimiter)
	} else {
		err = tabular.WriteSheet(out, req.Target, "Data")
	}
	if err != nil {
		s.logger.Error("Conversion failed writing target", "target", req.Target, "error", err)
		return nil, err
	}

	s.logger.Info("Conversion finished", "target", req.Target, "rows", len(out.Rows))
	return &ConvertResult{Target: req.Target, Rows: len(out.Rows), Columns: out.Headers}, nil
}
