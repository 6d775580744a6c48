package utils

import (
	"encoding/json"
	"errors"

	"github.com/vnkhanh/survey-insights/survey"
)

const maxLowestCount = 100

type NullableInt struct {
	Set   bool
	Value *int
}

func (n *NullableInt) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n NullableInt) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// RunOptions are the per-run overrides a client may send with an upload.
type RunOptions struct {
	LowestCount NullableInt     `json:"lowest_count,omitempty"` // null means the configured default
	SkipCharts  *bool           `json:"skip_charts,omitempty"`
	Workbook    *bool           `json:"workbook,omitempty"`
	Publish     *bool           `json:"publish,omitempty"`
	Columns     *survey.Columns `json:"columns,omitempty"`
}

// ValidateRunOptions clamps lowest_count to 1..100.
func ValidateRunOptions(o *RunOptions) error {
	if o == nil {
		return errors.New("empty options")
	}
	if o.LowestCount.Set && o.LowestCount.Value != nil {
		v := min(max(*o.LowestCount.Value, 1), maxLowestCount)
		o.LowestCount.Value = &v
	}
	return nil
}

func ParseRunOptions(raw []byte) (*RunOptions, error) {
	if len(raw) == 0 {
		return &RunOptions{}, nil
	}
	var o RunOptions
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, errors.New("options are not valid JSON")
	}
	if err := ValidateRunOptions(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// RunOptionsJSON encodes options for storage with the run.
func RunOptionsJSON(o *RunOptions) (string, error) {
	if o == nil {
		o = &RunOptions{}
	}
	b, err := json.Marshal(o)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MergeRunOptions applies the fields set in patch on top of base.
func MergeRunOptions(base, patch *RunOptions) *RunOptions {
	if base == nil {
		base = &RunOptions{}
	}
	if patch == nil {
		patch = &RunOptions{}
	}
	out := *base
	if patch.LowestCount.Set {
		out.LowestCount = patch.LowestCount
	}
	if patch.SkipCharts != nil {
		out.SkipCharts = patch.SkipCharts
	}
	if patch.Workbook != nil {
		out.Workbook = patch.Workbook
	}
	if patch.Publish != nil {
		out.Publish = patch.Publish
	}
	if patch.Columns != nil {
		out.Columns = patch.Columns
	}
	return &out
}

// Bool reads an optional flag.
func Bool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
