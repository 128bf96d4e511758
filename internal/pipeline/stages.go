package pipeline

import (
	"schoolsdb/internal/extract"
	"schoolsdb/internal/table"
	"schoolsdb/internal/transform"
	"schoolsdb/lib/telemetry"
)

// Table names written by the pipelines.
const (
	TableSchoolDetails         = "SchoolDetails"
	TableSchools               = "Schools"
	TableSchoolCharacteristics = "SchoolCharacteristics"
	TableSchoolDemographics    = "SchoolDemographics"
	TableStates                = "States"
	TablePrivateSchools        = "PrivateSchools"
)

// schoolStage is the school extract and how its dimension and fact tables are shaped.
type schoolStage struct {
	table             string
	source            extract.Source
	descriptionColumn string
	options           transform.SchoolOptions
}

// stage is a source loaded into a single table, optionally transformed.
type stage struct {
	table     string
	source    extract.Source
	transform func(*table.Table, telemetry.API, *Counters) (*table.Table, error)
}

func transformDemographics(t *table.Table, api telemetry.API, counters *Counters) (*table.Table, error) {
	out, stats, err := transform.TransformDemographics(t, api)
	if err != nil {
		return nil, err
	}
	counters.MissingStudentCounts += stats.Missing
	counters.InvalidStudentCounts += stats.Invalid
	return out, nil
}

type plan struct {
	schools schoolStage
	stages  []stage
	// order is the order tables are written in.
	order []string
}

func (c Config) plan() plan {
	demographics := stage{
		table: TableSchoolDemographics,
		source: extract.Source{
			Name:    "demographics",
			Path:    c.Path(c.Files.Demographics),
			Renames: transform.DemographicsRenames,
			Narrow:  true,
		},
		transform: transformDemographics,
	}
	private := stage{
		table: TablePrivateSchools,
		source: extract.Source{
			Name:    "private_schools",
			Path:    c.Path(c.Files.PrivateSchools),
			Renames: transform.PrivateSchoolRenames,
		},
	}

	if c.Variant == VariantDirectory {
		return plan{
			schools: schoolStage{
				table: TableSchools,
				source: extract.Source{
					Name:    "schools",
					Path:    c.Path(c.Files.Schools),
					Renames: transform.DirectorySchoolRenames,
				},
				descriptionColumn: "Description",
				options: transform.SchoolOptions{
					Drop: []string{"Description", "FIPST"},
					Keep: transform.DirectorySchoolColumns,
				},
			},
			stages: []stage{demographics, private},
			order: []string{
				TableSchools,
				TableSchoolDemographics,
				TableStates,
				TablePrivateSchools,
			},
		}
	}

	characteristics := stage{
		table: TableSchoolCharacteristics,
		source: extract.Source{
			Name:    "characteristics",
			Path:    c.Path(c.Files.Characteristics),
			Renames: transform.CharacteristicsRenames,
			Narrow:  true,
		},
	}
	return plan{
		schools: schoolStage{
			table: TableSchoolDetails,
			source: extract.Source{
				Name:    "school_details",
				Path:    c.Path(c.Files.Schools),
				Renames: transform.DetailSchoolRenames,
			},
			descriptionColumn: "StateName",
			options: transform.SchoolOptions{
				Drop:           []string{"StateName", "FIPST"},
				NormalizeFlags: true,
			},
		},
		stages: []stage{characteristics, demographics, private},
		order: []string{
			TableSchoolCharacteristics,
			TableSchoolDetails,
			TableSchoolDemographics,
			TableStates,
			TablePrivateSchools,
		},
	}
}

// Sources lists every extract the configured variant reads, school extract first.
func (c Config) Sources() []extract.Source {
	p := c.plan()
	out := []extract.Source{p.schools.source}
	for _, s := range p.stages {
		out = append(out, s.source)
	}
	return out
}
