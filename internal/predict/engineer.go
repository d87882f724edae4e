package predict

import (
	"strings"
)

// bondCondition maps the categorical bond flag to a number. Unknown values count as unbonded.
func bondCondition(cell string) float64 {
	if strings.TrimSpace(cell) == "B" {
		return 1
	}
	return 0
}

// Engineer derives the model features in place: bond_condition becomes numeric, blank flange
// dimensions become 0 and the two ratio columns are added. It returns the feature matrix in
// FeatureColumns order.
//
// Parameters:
//   - t: a table carrying every input column
//
// Returns:
//   - [][]float64: one feature row per table row
//   - error: ErrMissingColumns or ErrInvalidValue
func Engineer(t *Table) ([][]float64, error) {
	if err := t.require(InputColumns); err != nil {
		return nil, err
	}

	bondIdx := t.Column("bond_condition")
	bond := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if bondIdx < len(row) {
			bond[i] = bondCondition(row[bondIdx])
		}
	}
	t.SetColumn("bond_condition", bond)

	for name := range blankAsZero {
		v, err := t.Float(name)
		if err != nil {
			return nil, err
		}
		t.SetColumn(name, v)
	}

	width, err := t.Float("beam_width")
	if err != nil {
		return nil, err
	}
	height, err := t.Float("beam_height")
	if err != nil {
		return nil, err
	}
	steel, err := t.Float("area_of_steel_reinforcement")
	if err != nil {
		return nil, err
	}

	ratio := make([]float64, len(t.Rows))
	reinforcement := make([]float64, len(t.Rows))
	for i := range t.Rows {
		ratio[i] = height[i] / width[i]
		reinforcement[i] = steel[i] / (width[i] * height[i])
	}
	t.SetColumn(ColumnHeightToWidth, ratio)
	t.SetColumn(ColumnReinforcement, reinforcement)

	x := make([][]float64, len(t.Rows))
	for i := range x {
		x[i] = make([]float64, len(FeatureColumns))
	}
	for j, name := range FeatureColumns {
		col, err := t.Float(name)
		if err != nil {
			return nil, err
		}
		for i := range x {
			x[i][j] = col[i]
		}
	}
	return x, nil
}
