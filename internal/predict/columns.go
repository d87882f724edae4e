// Package predict turns beam measurements into load and displacement predictions.
//
// A Model is a standard scaler followed by one linear regressor per target. Models are trained
// with Fit, persisted as TOML and served through a Registry that reloads the file when it changes.
package predict

// InputColumns are the columns an uploaded table must carry.
var InputColumns = []string{
	"beam_width",
	"beam_height",
	"beam_length",
	"flange_width",
	"flange_height",
	"web_thickness",
	"concrete_compressive_strength",
	"concrete_modulus_of_elasticity",
	"yield_strength_of_reinforcement",
	"prestressing_strength",
	"steel_modulus_of_elasticity",
	"area_of_steel_reinforcement",
	"area_of_prime_reinforcement",
	"area_of_prestressing_reinforcement",
	"number_of_strands",
	"axial_load",
	"bond_condition",
}

// Derived columns added by Engineer.
const (
	ColumnHeightToWidth = "height_to_width_ratio"
	ColumnReinforcement = "reinforcement_ratio"
)

// FeatureColumns is the model input order: the input columns followed by the derived ones.
var FeatureColumns = append(append([]string{}, InputColumns...), ColumnHeightToWidth, ColumnReinforcement)

// Targets are the predicted quantities, in the order they are appended to the output table.
var Targets = []string{
	"Cracking Load",
	"Ultimate Load",
	"Ultimate Moment",
	"Axial Displacement",
}

// blankAsZero lists columns where an empty cell means "not present" rather than missing data.
var blankAsZero = map[string]bool{
	"flange_width":  true,
	"flange_height": true,
}
