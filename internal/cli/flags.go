package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// decimalValue adapts a decimal.Decimal to the pflag.Value interface so
// width flags parse exactly instead of passing through float64.
type decimalValue struct {
	d *decimal.Decimal
}

var _ pflag.Value = (*decimalValue)(nil)

func newDecimalValue(d *decimal.Decimal) *decimalValue {
	return &decimalValue{d: d}
}

func (v *decimalValue) String() string {
	if v.d == nil {
		return ""
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	parsed, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*v.d = parsed
	return nil
}

func (v *decimalValue) Type() string {
	return "decimal"
}
