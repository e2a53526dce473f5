package odr2gml

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// TransformerConfiguration steers the OpenDRIVE to road-space transformation
type TransformerConfiguration struct {
	// Tolerance for fuzzy comparisons
	Tolerance float64 `toml:"tolerance"`
	// AttributesPrefix is prepended to every attribute key
	AttributesPrefix string `toml:"attributes_prefix"`
	// CrsEpsg is the EPSG code of the coordinate reference system (0 = unset)
	CrsEpsg int `toml:"crs_epsg"`
}

// DefaultTransformerConfiguration returns the documented defaults
func DefaultTransformerConfiguration() TransformerConfiguration {
	return TransformerConfiguration{
		Tolerance:        DefaultTolerance,
		AttributesPrefix: "opendrive_",
		CrsEpsg:          0,
	}
}

// WriterConfiguration steers the road-space to CityGML transformation and is
// recognised here so one configuration file covers the whole chain
type WriterConfiguration struct {
	GmlIDPrefix                 string  `toml:"gml_id_prefix"`
	IdentifierAttributesPrefix  string  `toml:"identifier_attributes_prefix"`
	FlattenGenericAttributeSets bool    `toml:"flatten_generic_attribute_sets"`
	DiscretizationStepSize      float64 `toml:"discretization_step_size"`
	SweepDiscretizationStepSize float64 `toml:"sweep_discretization_step_size"`
	CircleSlices                int     `toml:"circle_slices"`
}

// DefaultWriterConfiguration returns the documented defaults
func DefaultWriterConfiguration() WriterConfiguration {
	return WriterConfiguration{
		GmlIDPrefix:                 "UUID_",
		IdentifierAttributesPrefix:  "identifier_",
		FlattenGenericAttributeSets: true,
		DiscretizationStepSize:      0.7,
		SweepDiscretizationStepSize: 0.3,
		CircleSlices:                16,
	}
}

// Configuration bundles the configuration of the whole transformation chain
type Configuration struct {
	Transformer TransformerConfiguration `toml:"transformer"`
	Writer      WriterConfiguration      `toml:"writer"`
}

// DefaultConfiguration returns the documented defaults for the whole chain
func DefaultConfiguration() Configuration {
	return Configuration{
		Transformer: DefaultTransformerConfiguration(),
		Writer:      DefaultWriterConfiguration(),
	}
}

// ReadConfigurationFromTOML reads a configuration file; missing values fall
// back to the defaults, user supplied values override
func ReadConfigurationFromTOML(fname string) (Configuration, error) {
	configuration := DefaultConfiguration()
	if _, err := toml.DecodeFile(fname, &configuration); err != nil {
		return Configuration{}, errors.Wrap(err, "Can't read configuration file")
	}
	return configuration, nil
}
