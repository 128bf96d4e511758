package pipeline

import (
	"fmt"
	"path/filepath"

	"dario.cat/mergo"
)

type Variant string

const (
	// VariantDetail loads the school directory detail extract with
	// characteristics, demographics and private schools.
	VariantDetail Variant = "detail"
	// VariantDirectory loads the public school directory extract with
	// demographics and private schools.
	VariantDirectory Variant = "directory"
)

// Files are the extract file names, relative to Config.DataDir unless absolute.
type Files struct {
	Schools         string `json:"schools"`
	Characteristics string `json:"characteristics"`
	Demographics    string `json:"demographics"`
	PrivateSchools  string `json:"private_schools"`
}

type Config struct {
	Variant Variant `json:"variant"`
	DataDir string  `json:"data_dir"`
	Files   Files   `json:"files"`
}

// DefaultConfig returns the default data layout of a variant.
func DefaultConfig(variant Variant) Config {
	switch variant {
	case VariantDirectory:
		return Config{
			Variant: VariantDirectory,
			DataDir: "data",
			Files: Files{
				Schools:        "us_schools.csv",
				Demographics:   "us_schools_demographics.csv",
				PrivateSchools: "private_schools.csv",
			},
		}
	default:
		return Config{
			Variant: VariantDetail,
			DataDir: "data",
			Files: Files{
				Schools:         "us_schools_detail_24_25.csv",
				Characteristics: "us_schools.csv",
				Demographics:    "us_schools_demographics_24_25.csv",
				PrivateSchools:  "private_schools_21_22.csv",
			},
		}
	}
}

// WithDefaults fills every empty field from the defaults of the configured
// variant, an empty variant means VariantDetail.
func (c Config) WithDefaults() (Config, error) {
	if c.Variant == "" {
		c.Variant = VariantDetail
	}
	if c.Variant != VariantDetail && c.Variant != VariantDirectory {
		return c, fmt.Errorf("unknown variant %q, expected %q or %q", c.Variant, VariantDetail, VariantDirectory)
	}
	err := mergo.Merge(&c, DefaultConfig(c.Variant))
	if err != nil {
		return c, err
	}
	return c, nil
}

// Path resolves an extract file name against DataDir.
func (c Config) Path(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.DataDir, file)
}
