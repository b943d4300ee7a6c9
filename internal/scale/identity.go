package scale

import "gochart/internal/errs"

// Identity passes numeric values through unchanged. It is used for fields
// that already hold unit positions, or constants.
type Identity struct {
	common
	value any
}

// NewIdentity records the first non-nil value as the scale's constant.
func NewIdentity(field string, values []any, opts Options) (*Identity, error) {
	id := &Identity{common: common{field: field, opts: opts}}
	for _, v := range values {
		if v != nil {
			id.value = v
			break
		}
	}
	return id, nil
}

func (s *Identity) Type() Type       { return TypeIdentity }
func (s *Identity) Revision() uint64 { return 0 }

func (s *Identity) Map(v any) (float64, error) {
	if err := s.missing(v); err != nil {
		return 0, err
	}
	f, ok := ToFloat(v)
	if !ok {
		return 0, errs.Mismatch(s.field, v, errs.ErrNotNumeric)
	}
	return f, nil
}

func (s *Identity) Invert(t float64) any { return t }

func (s *Identity) Ticks() []Tick {
	f, ok := ToFloat(s.value)
	if !ok {
		return nil
	}
	return []Tick{{Value: s.value, Text: s.Text(s.value), T: f}}
}

func (s *Identity) Text(v any) string {
	if s.opts.Formatter != nil {
		return s.opts.Formatter(v)
	}
	if f, ok := ToFloat(v); ok {
		return formatNumber(f)
	}
	return Key(v)
}
