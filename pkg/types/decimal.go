package types

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// OptionalDecimal decodes a JSON number, numeric string, empty string or
// null. Empty and null leave Value nil.
type OptionalDecimal struct {
	Value *decimal.Decimal
}

func (o *OptionalDecimal) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		o.Value = nil
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

func (o OptionalDecimal) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return o.Value.MarshalJSON()
}
