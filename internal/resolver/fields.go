package resolver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"forecast-locator-api/internal/models"
)

var (
	// ErrFieldMissing is returned for a field that is absent or JSON null.
	ErrFieldMissing = errors.New("missing or null")
	// ErrFieldEmpty is returned for a string field holding "".
	ErrFieldEmpty = errors.New("empty string")
)

// fieldRule maps one JSON property onto a GridMetadata field.
type fieldRule struct {
	name   string
	assign func(g *models.GridMetadata, raw json.RawMessage) error
}

// gridFields lists every property required from a /points response.
// Integer grid indexes accept 0; only absence or null is an error.
var gridFields = []fieldRule{
	{name: "gridId", assign: func(g *models.GridMetadata, raw json.RawMessage) (err error) {
		g.Office, err = coerceString(raw)
		return err
	}},
	{name: "gridX", assign: func(g *models.GridMetadata, raw json.RawMessage) (err error) {
		g.GridX, err = coerceInt(raw)
		return err
	}},
	{name: "gridY", assign: func(g *models.GridMetadata, raw json.RawMessage) (err error) {
		g.GridY, err = coerceInt(raw)
		return err
	}},
	{name: "forecast", assign: func(g *models.GridMetadata, raw json.RawMessage) (err error) {
		g.Forecast, err = coerceString(raw)
		return err
	}},
	{name: "forecastHourly", assign: func(g *models.GridMetadata, raw json.RawMessage) (err error) {
		g.ForecastHourly, err = coerceString(raw)
		return err
	}},
	{name: "forecastGridData", assign: func(g *models.GridMetadata, raw json.RawMessage) (err error) {
		g.ForecastGridData, err = coerceString(raw)
		return err
	}},
}

// decodeGridMetadata applies gridFields to a properties object and reports
// every failing field at once.
func decodeGridMetadata(properties map[string]json.RawMessage) (models.GridMetadata, error) {
	var (
		grid   models.GridMetadata
		fields []string
		errs   []error
	)

	for _, rule := range gridFields {
		if err := rule.assign(&grid, properties[rule.name]); err != nil {
			fields = append(fields, rule.name)
			errs = append(errs, fmt.Errorf("%s: %w", rule.name, err))
		}
	}

	if len(fields) > 0 {
		return models.GridMetadata{}, &InvalidDataError{
			Reason: "incomplete points metadata",
			Fields: fields,
			Err:    errors.Join(errs...),
		}
	}

	return grid, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// coerceFloat accepts a JSON number or a numeric string.
func coerceFloat(raw json.RawMessage) (float64, error) {
	if isNull(raw) {
		return 0, ErrFieldMissing
	}

	var f float64
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %w", err)
		}
	} else if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("not a number: %w", err)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %s", string(raw))
	}
	return f, nil
}

// coerceInt accepts a JSON integer, an integral JSON number such as 12.0,
// or a string holding either.
func coerceInt(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return 0, ErrFieldMissing
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("not an integer: %w", err)
	}

	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}

	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("not an integer: %w", err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("not an integer: %s", n)
	}
	return int(f), nil
}

// coerceString requires a non-empty JSON string.
func coerceString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", ErrFieldMissing
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("not a string: %w", err)
	}
	if s == "" {
		return "", ErrFieldEmpty
	}
	return s, nil
}
