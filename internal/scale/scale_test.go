package scale

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochart/internal/errs"
)

func float(v float64) *float64 { return &v }

func TestLinearMapInvert(t *testing.T) {
	s, err := NewLinear("v", []any{0.0, 100}, Options{})
	require.NoError(t, err)

	got, err := s.Map(50)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)
	assert.Equal(t, 50.0, s.Invert(0.5))

	// Outside the domain extrapolates.
	got, err = s.Map(150.0)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-12)

	for _, v := range []float64{-20, 0, 12.5, 99.9, 100} {
		u, err := s.Map(v)
		require.NoError(t, err)
		assert.InDelta(t, v, s.Invert(u).(float64), 1e-9)
	}
}

func TestLinearMismatch(t *testing.T) {
	s, err := NewLinear("v", []any{1, 2}, Options{})
	require.NoError(t, err)

	_, err = s.Map("abc")
	var me *errs.DataMismatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "v", me.Field)
	assert.ErrorIs(t, err, errs.ErrNotNumeric)

	_, err = s.Map(nil)
	assert.ErrorIs(t, err, errs.ErrMissingField)

	// Numeric strings are accepted.
	u, err := s.Map("1.5")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, u, 1e-12)
}

func TestLinearDomain(t *testing.T) {
	_, err := NewLinear("v", []any{1, 2}, Options{Min: float(10), Max: float(0)})
	assert.True(t, errs.IsConfig(err))
	assert.ErrorIs(t, err, errs.ErrInvertedDomain)

	_, err = NewLinear("v", nil, Options{})
	assert.True(t, errs.IsMismatch(err))
	assert.ErrorIs(t, err, errs.ErrEmptyDomain)

	s, err := NewLinear("v", nil, Options{Min: float(0), Max: float(10)})
	require.NoError(t, err)
	min, max := s.Domain()
	assert.Equal(t, [2]float64{0, 10}, [2]float64{min, max})

	// A single value sits in the middle.
	s, err = NewLinear("v", []any{7}, Options{})
	require.NoError(t, err)
	u, err := s.Map(7)
	require.NoError(t, err)
	assert.Equal(t, 0.5, u)
}

func TestLinearNiceAndTicks(t *testing.T) {
	s, err := NewLinear("v", []any{3, 97}, Options{Nice: true})
	require.NoError(t, err)
	min, max := s.Domain()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 100.0, max)

	ticks := s.Ticks()
	require.NotEmpty(t, ticks)
	assert.LessOrEqual(t, len(ticks), 5)
	assert.True(t, sort.SliceIsSorted(ticks, func(i, j int) bool { return ticks[i].T < ticks[j].T }))
	for _, tk := range ticks {
		assert.GreaterOrEqual(t, tk.T, -1e-9)
		assert.LessOrEqual(t, tk.T, 1+1e-9)
		assert.NotEmpty(t, tk.Text)
	}

	// Explicit bounds survive niceing.
	s, err = NewLinear("v", []any{3, 97}, Options{Nice: true, Min: float(3)})
	require.NoError(t, err)
	min, _ = s.Domain()
	assert.Equal(t, 3.0, min)

	// A single requested tick still nices to round bounds.
	s, err = NewLinear("v", []any{0.3, 97.2}, Options{Nice: true, TickCount: 1})
	require.NoError(t, err)
	min, max = s.Domain()
	assert.Equal(t, [2]float64{0, 100}, [2]float64{min, max})
	assert.NotPanics(t, func() { s.Ticks() })
}

func TestLinearText(t *testing.T) {
	s, err := NewLinear("v", []any{0, 1}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "50", s.Text(50.0))
	assert.Equal(t, "1,234.5", s.Text(1234.5))

	s, err = NewLinear("v", []any{0, 1}, Options{Formatter: func(v any) string { return "x" }})
	require.NoError(t, err)
	assert.Equal(t, "x", s.Text(3))
}

func TestOrdinalPoints(t *testing.T) {
	s, err := NewOrdinal("cat", []any{"a", "b", "c", "b"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, s.Values())

	got, err := s.Map("b")
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)
	assert.Equal(t, "b", s.Invert(0.5))
	assert.Equal(t, "a", s.Invert(0.2))
	assert.Equal(t, "c", s.Invert(0.9))
	assert.Equal(t, "c", s.Invert(7))

	_, err = s.Map("z")
	assert.ErrorIs(t, err, errs.ErrUnknownCategory)
	assert.True(t, errs.IsMismatch(err))
}

func TestOrdinalBands(t *testing.T) {
	s, err := NewOrdinal("cat", []any{"a", "b", "c"}, Options{Band: true})
	require.NoError(t, err)
	got, err := s.Map("a")
	require.NoError(t, err)
	assert.InDelta(t, 1.0/6, got, 1e-12)
	got, err = s.Map("b")
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)
	assert.Equal(t, "b", s.Invert(0.5))
	assert.Equal(t, "a", s.Invert(0.3))
	assert.InDelta(t, 1.0/3, s.Step(), 1e-12)
}

func TestOrdinalActive(t *testing.T) {
	s, err := NewOrdinal("cat", nil, Options{Values: []string{"a", "b", "c"}})
	require.NoError(t, err)
	rev := s.Revision()

	s.SetActive([]string{"c", "a", "zz"})
	assert.NotEqual(t, rev, s.Revision())
	assert.Equal(t, []string{"a", "c"}, s.Active())
	assert.Equal(t, []string{"a", "b", "c"}, s.Values())

	_, err = s.Map("b")
	assert.ErrorIs(t, err, errs.ErrUnknownCategory)
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains("zz"))
	got, err := s.Map("c")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
	assert.Len(t, s.Ticks(), 2)

	s.SetActive(nil)
	assert.Nil(t, s.Invert(0.5))
	assert.Empty(t, s.Ticks())
}

func TestTimeScale(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(10 * 24 * time.Hour)
	s, err := NewTime("when", []any{t0, "2024-01-06", t1}, Options{})
	require.NoError(t, err)

	got, err := s.Map(t0.Add(5 * 24 * time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
	assert.True(t, t0.Add(5*24*time.Hour).Equal(s.Invert(0.5).(time.Time)))

	ticks := s.Ticks()
	require.NotEmpty(t, ticks)
	assert.LessOrEqual(t, len(ticks), 5)
	for i := 1; i < len(ticks); i++ {
		assert.Greater(t, ticks[i].T, ticks[i-1].T)
	}
	assert.Equal(t, "2024-01-01", s.Text(t0))

	_, err = s.Map(true)
	assert.True(t, errs.IsMismatch(err))
}

func TestTimeNice(t *testing.T) {
	from := time.Date(2020, 1, 3, 5, 0, 0, 0, time.UTC)
	to := time.Date(2020, 11, 17, 9, 0, 0, 0, time.UTC)
	s, err := NewTime("when", []any{from, to}, Options{Nice: true})
	require.NoError(t, err)
	min, max := s.Domain()
	assert.True(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Equal(fromUnixSeconds(min, time.UTC)))
	assert.True(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC).Equal(fromUnixSeconds(max, time.UTC)))

	ticks := s.Ticks()
	require.NotEmpty(t, ticks)
	assert.LessOrEqual(t, len(ticks), 5)
	assert.InDelta(t, 0, ticks[0].T, 1e-12)
	assert.InDelta(t, 1, ticks[len(ticks)-1].T, 1e-12)

	// Pinned bounds are kept.
	s, err = NewTime("when", []any{from, to}, Options{Nice: true, Min: float(unixSeconds(from))})
	require.NoError(t, err)
	min, max = s.Domain()
	assert.Equal(t, unixSeconds(from), min)
	assert.True(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC).Equal(fromUnixSeconds(max, time.UTC)))
}

func TestInfer(t *testing.T) {
	now := time.Now()
	tests := []struct {
		values []any
		want   Type
	}{
		{[]any{1, 2.5, nil}, TypeLinear},
		{[]any{now, now}, TypeTime},
		{[]any{"a", 1}, TypeOrdinal},
		{[]any{0.0, 50.0, 100.0, "lots"}, TypeLinear},
		{[]any{"1", "2.5", nil}, TypeLinear},
		{[]any{"a", "b", 3}, TypeOrdinal},
		{[]any{true}, TypeOrdinal},
		{nil, TypeLinear},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Infer(tt.values), "%v", tt.values)
	}
}

func TestNewAndParseType(t *testing.T) {
	s, err := New("x", []any{"a", "b"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, TypeOrdinal, s.Type())
	assert.Equal(t, "x", s.Alias())

	s, err = New("x", []any{1, 2}, Options{Type: TypeIdentity, Alias: "X"})
	require.NoError(t, err)
	assert.Equal(t, "X", s.Alias())
	u, err := s.Map(0.25)
	require.NoError(t, err)
	assert.Equal(t, 0.25, u)

	typ, err := ParseType("cat")
	require.NoError(t, err)
	assert.Equal(t, TypeOrdinal, typ)
	_, err = ParseType("log")
	assert.True(t, errors.Is(err, errs.ErrUnsupported))
}
