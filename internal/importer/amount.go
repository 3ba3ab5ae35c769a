package importer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty amount")

var currencyNoise = strings.NewReplacer("$", "", "MXN", "", "mxn", "", " ", "", "\u00a0", "")

// parseAmount reads a price written either way round: "1,234.56" or
// "1.234,56". When both separators appear the last one is the decimal mark.
// A lone comma is a decimal mark unless exactly three digits follow it.
func parseAmount(s string) (float64, error) {
	clean := currencyNoise.Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, errEmptyAmount
	}

	dot := strings.LastIndex(clean, ".")
	comma := strings.LastIndex(clean, ",")

	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case comma >= 0:
		if strings.Count(clean, ",") == 1 && len(clean)-comma-1 != 3 {
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case dot >= 0 && strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(2).InexactFloat64(), nil
}
