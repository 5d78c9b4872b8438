package domain

import "time"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// CoalesceDate returns the first non-nil date.
func CoalesceDate(ptrs ...*time.Time) *time.Time {
	for _, p := range ptrs {
		if p != nil {
			return p
		}
	}
	return nil
}

// MoneyFromPtr returns the pointed-to amount, or zero.
func MoneyFromPtr(p *Money) Money {
	if p == nil {
		return 0
	}
	return *p
}
