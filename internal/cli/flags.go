package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/invoice"
	"github.com/spf13/pflag"
)

// monthFlag accepts 1-12 or an English or Indonesian month name. Zero means
// every month.
type monthFlag int

var _ pflag.Value = (*monthFlag)(nil)

var monthNames = map[string]int{
	"jan": 1, "januari": 1, "january": 1,
	"feb": 2, "februari": 2, "february": 2,
	"mar": 3, "maret": 3, "march": 3,
	"apr": 4, "april": 4,
	"mei": 5, "may": 5,
	"jun": 6, "juni": 6, "june": 6,
	"jul": 7, "juli": 7, "july": 7,
	"agu": 8, "aug": 8, "agustus": 8, "august": 8,
	"sep": 9, "september": 9,
	"okt": 10, "oct": 10, "oktober": 10, "october": 10,
	"nov": 11, "november": 11,
	"des": 12, "dec": 12, "desember": 12, "december": 12,
}

func (m *monthFlag) String() string {
	if *m == 0 {
		return ""
	}
	return time.Month(*m).String()
}

func (m *monthFlag) Set(s string) error {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return fmt.Errorf("month must be between 1 and 12")
		}
		*m = monthFlag(n)
		return nil
	}
	n, ok := monthNames[strings.ToLower(s)]
	if !ok {
		return fmt.Errorf("unknown month %q", s)
	}
	*m = monthFlag(n)
	return nil
}

func (m *monthFlag) Type() string { return "month" }

type paymentStatusFlag domain.PaymentStatus

var _ pflag.Value = (*paymentStatusFlag)(nil)

func (p *paymentStatusFlag) String() string { return string(*p) }

func (p *paymentStatusFlag) Set(s string) error {
	if s == "" {
		*p = ""
		return nil
	}
	st, err := domain.ParsePaymentStatus(strings.ToLower(s))
	if err != nil {
		return err
	}
	*p = paymentStatusFlag(st)
	return nil
}

func (p *paymentStatusFlag) Type() string { return "lunas|pending|overdue" }

type sortFlag invoice.SortMode

var _ pflag.Value = (*sortFlag)(nil)

func (f *sortFlag) String() string { return string(*f) }

func (f *sortFlag) Set(s string) error {
	mode, err := invoice.ParseSortMode(strings.ToLower(s))
	if err != nil {
		return err
	}
	*f = sortFlag(mode)
	return nil
}

func (f *sortFlag) Type() string { return "date|jenis|status" }

// dateFlag is an optional YYYY-MM-DD date. "none" clears it.
type dateFlag struct {
	t *time.Time
}

var _ pflag.Value = (*dateFlag)(nil)

func (d *dateFlag) String() string { return domain.FormatDate(d.t) }

func (d *dateFlag) Set(s string) error {
	if s == "" || strings.EqualFold(s, "none") {
		d.t = nil
		return nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	d.t = &t
	return nil
}

func (d *dateFlag) Type() string { return "date" }

// moneyFlag parses whole rupiah, tolerating "." and "," thousands separators
// and a leading "Rp".
type moneyFlag domain.Money

var _ pflag.Value = (*moneyFlag)(nil)

func (m *moneyFlag) String() string { return strconv.FormatInt(int64(*m), 10) }

func (m *moneyFlag) Set(s string) error {
	v, err := parseMoney(s)
	if err != nil {
		return err
	}
	*m = moneyFlag(v)
	return nil
}

func (m *moneyFlag) Type() string { return "rupiah" }

func parseMoney(s string) (domain.Money, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "Rp"), "rp")
	clean = strings.NewReplacer(".", "", ",", "", " ", "", "_", "").Replace(clean)
	v, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("amount cannot be negative")
	}
	return domain.Money(v), nil
}
