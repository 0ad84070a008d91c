package render

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
	"github.com/dashweave/dashweave/pkg/errors"
)

// metricRenderer renders a single aggregated figure.
//
// Supported aggregations: count (non-empty values of value_var, or row
// count when value_var is unset), sum, mean, min, max. The numeric
// aggregations skip cells that do not parse as numbers.
type metricRenderer struct{}

func (metricRenderer) Kind() content.Kind { return content.KindMetric }

func (metricRenderer) Render(_ context.Context, item content.Item, ds *dataset.Dataset) (*Artifact, error) {
	agg := stringParam(item.Params, "agg")
	valueVar := stringParam(item.Params, "value_var")

	if ds == nil {
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "metric item #%d has no dataset", item.Index)
	}

	var values []string
	if valueVar != "" {
		col, ok := ds.Column(valueVar)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownColumn, "metric column %q not in dataset %q", valueVar, ds.Name)
		}
		values = col
	}

	value, err := aggregate(agg, valueVar, ds, values)
	if err != nil {
		return nil, err
	}

	label := stringParam(item.Params, "label")
	if label == "" {
		label = describeAgg(agg, valueVar)
	}

	return &Artifact{Markdown: fmt.Sprintf("**%s**\n\n_%s_\n", value, label)}, nil
}

func aggregate(agg, valueVar string, ds *dataset.Dataset, values []string) (string, error) {
	switch agg {
	case "count":
		if valueVar == "" {
			return formatNumber(float64(ds.Len())), nil
		}
		n := 0
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				n++
			}
		}
		return formatNumber(float64(n)), nil

	case "sum", "mean", "min", "max":
		nums := parseNumbers(values)
		if len(nums) == 0 {
			return "–", nil
		}
		switch agg {
		case "sum":
			return formatNumber(sum(nums)), nil
		case "mean":
			return formatNumber(sum(nums) / float64(len(nums))), nil
		case "min":
			m := nums[0]
			for _, n := range nums[1:] {
				if n < m {
					m = n
				}
			}
			return formatNumber(m), nil
		default:
			m := nums[0]
			for _, n := range nums[1:] {
				if n > m {
					m = n
				}
			}
			return formatNumber(m), nil
		}

	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown aggregation %q", agg)
	}
}

func parseNumbers(values []string) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func sum(nums []float64) float64 {
	var s float64
	for _, n := range nums {
		s += n
	}
	return s
}

// formatNumber renders integers without a decimal point and everything
// else with two decimals.
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', 2, 64)
}

func describeAgg(agg, valueVar string) string {
	if valueVar == "" {
		return agg
	}
	return agg + " of " + valueVar
}
