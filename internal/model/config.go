package model

import "time"

// Config holds the complete wikibio configuration
type Config struct {
	Input        InputConfig   `yaml:"input" mapstructure:"input"`
	Fields       []string      `yaml:"fields" mapstructure:"fields" validate:"required,min=1,dive,required"`
	Placeholders []Placeholder `yaml:"placeholders" mapstructure:"placeholders" validate:"dive"`
	Output       OutputConfig  `yaml:"output" mapstructure:"output"`
	Load         LoadConfig    `yaml:"load" mapstructure:"load"`
}

// InputConfig locates the aligned corpus files
type InputConfig struct {
	Dir   string `yaml:"dir" mapstructure:"dir" validate:"required"`     // Dataset root (contains one directory per split)
	Split string `yaml:"split" mapstructure:"split" validate:"required"` // train, valid or test
}

// OutputConfig controls the intermediate and final tables
type OutputConfig struct {
	Intermediate  string `yaml:"intermediate" mapstructure:"intermediate" validate:"required"`
	Final         string `yaml:"final" mapstructure:"final" validate:"required"`
	Format        string `yaml:"format" mapstructure:"format" validate:"oneof=csv jsonl yaml"`
	MissingMarker string `yaml:"missing_marker" mapstructure:"missing_marker"` // Rendered for absent attributes
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
}

// Placeholder maps a bracket-escape token to its literal punctuation
type Placeholder struct {
	Token   string `yaml:"token" mapstructure:"token" validate:"required"`     // Matched case-insensitively, e.g. "-lrb-"
	Literal string `yaml:"literal" mapstructure:"literal" validate:"required"` // Replacement, e.g. "("
}

// LoadConfig configures pushing the final table into a database
type LoadConfig struct {
	Sink      string        `yaml:"sink" mapstructure:"sink" validate:"omitempty,oneof=postgres mongo"`
	DSN       string        `yaml:"dsn" mapstructure:"dsn"`           // Postgres DSN or Mongo URL
	Table     string        `yaml:"table" mapstructure:"table"`       // Postgres table / Mongo collection
	Database  string        `yaml:"database" mapstructure:"database"` // Mongo database name
	BatchSize int           `yaml:"batch_size" mapstructure:"batch_size" validate:"gte=1"`
	Workers   int           `yaml:"workers" mapstructure:"workers" validate:"gte=1"`
	Rate      float64       `yaml:"rate" mapstructure:"rate" validate:"gte=0"` // Batches per second per sink, 0 = unlimited
	Burst     int           `yaml:"burst" mapstructure:"burst"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultFields is the allow-list of infobox attributes kept in the output
func DefaultFields() []string {
	return []string{
		"name",
		"birth_date",
		"birth_place",
		"death_date",
		"death_place",
		"nationality",
		"occupation",
	}
}

// DefaultPlaceholders returns the PTB-style bracket escapes found in WikiBio text
func DefaultPlaceholders() []Placeholder {
	return []Placeholder{
		{Token: "-lrb-", Literal: "("},
		{Token: "-rrb-", Literal: ")"},
		{Token: "-lsb-", Literal: "["},
		{Token: "-rsb-", Literal: "]"},
		{Token: "-lcb-", Literal: "{"},
		{Token: "-rcb-", Literal: "}"},
	}
}

// DefaultConfig returns the configuration matching the stock WikiBio layout
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Dir:   "wikipedia-biography-dataset",
			Split: "train",
		},
		Fields:       DefaultFields(),
		Placeholders: DefaultPlaceholders(),
		Output: OutputConfig{
			Intermediate:  "wikibio_train_filtered2.csv",
			Final:         "wikibio_train_filtered_final.csv",
			Format:        "csv",
			MissingMarker: "",
		},
		Load: LoadConfig{
			Table:     "biography",
			Database:  "wikibio",
			BatchSize: 500,
			Workers:   4,
			Rate:      0,
			Burst:     1,
			Timeout:   10 * time.Minute,
		},
	}
}
