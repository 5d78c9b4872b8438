package domain

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// Money is an amount in whole rupiah. Only summation is performed on it.
type Money int64

// String renders the amount with dot thousands separators, e.g. "Rp 1.250.000".
func (m Money) String() string {
	s := humanize.Comma(int64(m))
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "-") {
		return "-Rp " + s[1:]
	}
	return "Rp " + s
}

// SumMoney adds all amounts.
func SumMoney(vals ...Money) Money {
	var total Money
	for _, v := range vals {
		total += v
	}
	return total
}
