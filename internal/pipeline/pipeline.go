package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/ppiankov/wikibio/internal/corpus"
	"github.com/ppiankov/wikibio/internal/extract"
	"github.com/ppiankov/wikibio/internal/logger"
	"github.com/ppiankov/wikibio/internal/model"
	"github.com/ppiankov/wikibio/internal/normalize"
	"github.com/ppiankov/wikibio/internal/table"
)

// Pipeline orchestrates the extract and clean passes
type Pipeline struct {
	assembler  *extract.Assembler
	normalizer *normalize.Normalizer
	schema     model.Schema
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	n, err := normalize.New(cfg.Placeholders)
	if err != nil {
		return nil, fmt.Errorf("build normalizer: %w", err)
	}

	schema := model.NewSchema(cfg.Fields)
	return &Pipeline{
		assembler:  extract.NewAssembler(schema),
		normalizer: n,
		schema:     schema,
		config:     cfg,
	}, nil
}

// Stats summarizes one pass
type Stats struct {
	Records    int            // Rows written
	Sentences  int            // Sentence lines read (extract only)
	Filled     map[string]int // Rows with a value, per attribute
	Normalized int            // Rows whose text changed (clean only)
}

func (p *Pipeline) stats(records []model.Record) *Stats {
	s := &Stats{Records: len(records), Filled: make(map[string]int)}
	for _, rec := range records {
		for _, f := range p.schema.Fields {
			if _, ok := rec.Attrs[f]; ok {
				s.Filled[f]++
			}
		}
	}
	return s
}

// Extract builds the intermediate table from the corpus split
func (p *Pipeline) Extract(ctx context.Context) (*Stats, error) {
	// 1. Read the aligned files
	files := corpus.SplitFiles(p.config.Input.Dir, p.config.Input.Split)
	c, err := corpus.Load(files)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	logger.Debug("corpus loaded",
		"records", humanize.Comma(int64(c.Len())),
		"sentences", humanize.Comma(int64(len(c.Sentences))))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Reassemble paragraphs
	if total := corpus.SpanTotal(c.Counts); total != len(c.Sentences) {
		logger.Warn("sentence counts do not match sentence file",
			"expected", total, "actual", len(c.Sentences), "file", files.Sentence)
	}
	paragraphs := corpus.Reassemble(c.Sentences, c.Counts)

	// 3. Parse infoboxes and build records
	records, err := p.assembler.Assemble(c.IDs, c.Titles, c.Boxes, paragraphs)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4. Write the intermediate table
	if err := writeTable(p.config.Output.Intermediate, table.FormatCSV, p.schema, p.config.Output.MissingMarker, records); err != nil {
		return nil, fmt.Errorf("write intermediate table: %w", err)
	}

	stats := p.stats(records)
	stats.Sentences = len(c.Sentences)
	logger.Info("extracted records",
		"records", humanize.Comma(int64(stats.Records)),
		"output", p.config.Output.Intermediate)

	return stats, nil
}

// Clean rewrites placeholders in the intermediate table and writes the final table
func (p *Pipeline) Clean(ctx context.Context) (*Stats, error) {
	// 1. Reload the intermediate table
	records, err := ReadTable(p.config.Output.Intermediate, p.schema, p.config.Output.MissingMarker)
	if err != nil {
		return nil, fmt.Errorf("read intermediate table: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Normalize text
	changed := p.normalizer.Records(records)

	// 3. Write the final table
	format := table.Format(p.config.Output.Format)
	if err := writeTable(p.config.Output.Final, format, p.schema, p.config.Output.MissingMarker, records); err != nil {
		return nil, fmt.Errorf("write final table: %w", err)
	}

	stats := p.stats(records)
	stats.Normalized = changed
	logger.Info("cleaned records",
		"records", humanize.Comma(int64(stats.Records)),
		"normalized", humanize.Comma(int64(changed)),
		"output", p.config.Output.Final)

	return stats, nil
}

// Run executes Extract followed by Clean
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	extracted, err := p.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	cleaned, err := p.Clean(ctx)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}

	cleaned.Sentences = extracted.Sentences
	return cleaned, nil
}

// Schema returns the column layout the pipeline writes
func (p *Pipeline) Schema() model.Schema {
	return p.schema
}

// ReadTable loads a CSV table from disk
func ReadTable(path string, schema model.Schema, missing string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer func() { _ = f.Close() }()

	return table.ReadCSV(f, schema, missing)
}

func writeTable(path string, format table.Format, schema model.Schema, missing string, records []model.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w, err := table.NewWriter(f, format, schema, missing)
	if err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return w.Flush()
}
