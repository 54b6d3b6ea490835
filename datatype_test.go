package csvw

import (
	"testing"

	"github.com/stretchr/testify/require"

	csvwerr "github.com/jacoelho/csvw/errors"
)

func TestDatatypeFromString(t *testing.T) {
	dt, err := NewDatatype("integer")
	require.NoError(t, err)

	v, err := dt.Parse("5")
	require.NoError(t, err)
	require.Equal(t, int64(5), v)
}

func TestDatatypeWithCommonAndAtProps(t *testing.T) {
	dt, err := NewDatatype(map[string]any{
		"base":    "string",
		"length":  float64(5),
		"@id":     "x",
		"dc:type": "",
	})
	require.NoError(t, err)
	require.Equal(t, "x", dt.AtProps["id"])
	require.Contains(t, dt.CommonProps, "dc:type")

	v, err := dt.Validate("abcde")
	require.NoError(t, err)
	require.Equal(t, "abcde", v)

	_, err = dt.Validate("abc")
	require.Error(t, err)
	require.True(t, csvwerr.IsCode(err, csvwerr.ErrConstraint))
}

func TestDatatypeFacetConsistency(t *testing.T) {
	tests := []struct {
		name  string
		value map[string]any
	}{
		{"length below minLength", map[string]any{"base": "string", "length": float64(5), "minLength": float64(6)}},
		{"length above maxLength", map[string]any{"base": "string", "length": float64(5), "maxLength": float64(4)}},
		{"minLength above maxLength", map[string]any{"base": "string", "maxLength": float64(5), "minLength": float64(6)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDatatype(tt.value)
			require.Error(t, err)
			require.True(t, csvwerr.IsCode(err, csvwerr.ErrDatatypeConfig))
		})
	}
}

func TestDatatypeInvalidValue(t *testing.T) {
	_, err := NewDatatype(5)
	require.Error(t, err)

	_, err = NewDatatype("frobnicate")
	require.Error(t, err)
	require.True(t, csvwerr.IsCode(err, csvwerr.ErrUnknownDatatype))
}

func TestDatatypeLengthBounds(t *testing.T) {
	dt, err := NewDatatype(map[string]any{"base": "string", "minLength": float64(4)})
	require.NoError(t, err)
	_, err = dt.Validate("abc")
	require.Error(t, err)

	dt, err = NewDatatype(map[string]any{"base": "string", "maxLength": float64(4)})
	require.NoError(t, err)
	_, err = dt.Validate("abcdefg")
	require.Error(t, err)
}

func TestDatatypeNumericBounds(t *testing.T) {
	dt, err := NewDatatype(map[string]any{
		"base":    "integer",
		"minimum": float64(5),
		"maximum": float64(10),
	})
	require.NoError(t, err)

	v, err := dt.Parse("3")
	require.NoError(t, err)
	_, err = dt.Validate(v)
	require.Error(t, err)
	require.True(t, csvwerr.IsCode(err, csvwerr.ErrConstraint))

	formatted, err := dt.Formatted(v)
	require.NoError(t, err)
	require.Equal(t, "3", formatted)

	_, err = dt.Validate(int64(12))
	require.Error(t, err)

	v, err = dt.Read("7")
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}

func TestDatatypeFloatAndJSON(t *testing.T) {
	dt, err := NewDatatype(map[string]any{"base": "float"})
	require.NoError(t, err)
	v, err := dt.Parse("3.5")
	require.NoError(t, err)
	require.InDelta(t, 3.5, v, 1e-9)
	formatted, err := dt.Formatted(3.5)
	require.NoError(t, err)
	require.Equal(t, "3.5", formatted)

	dt, err = NewDatatype(map[string]any{"base": "json"})
	require.NoError(t, err)
	v, err = dt.Parse(`{"a": 5}`)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": float64(5)}, v)
}

func TestDatatypeBoolean(t *testing.T) {
	dt, err := NewDatatype(map[string]any{"base": "boolean"})
	require.NoError(t, err)

	_, err = dt.Parse("J")
	require.Error(t, err)
	require.True(t, csvwerr.IsCode(err, csvwerr.ErrLexicalValue))

	v, err := dt.Parse("false")
	require.NoError(t, err)
	require.Equal(t, false, v)

	formatted, err := dt.Formatted(true)
	require.NoError(t, err)
	require.Equal(t, "true", formatted)

	dt, err = NewDatatype(map[string]any{"base": "boolean", "format": "J|N"})
	require.NoError(t, err)
	v, err = dt.Parse("J")
	require.NoError(t, err)
	require.Equal(t, true, v)
	formatted, err = dt.Formatted(true)
	require.NoError(t, err)
	require.Equal(t, "J", formatted)
}

func TestDatatypeDateWithFormat(t *testing.T) {
	dt, err := NewDatatype(map[string]any{"base": "date", "format": "d.M.yyyy"})
	require.NoError(t, err)

	v, err := dt.Read("22.3.2015")
	require.NoError(t, err)
	formatted, err := dt.Formatted(v)
	require.NoError(t, err)
	require.Equal(t, "22.3.2015", formatted)
}

func TestDatatypeStampRequiresTimezone(t *testing.T) {
	_, err := NewDatatype(map[string]any{
		"base":   "dateTimeStamp",
		"format": "yyyy-MM-dd HH:mm:ss",
	})
	require.Error(t, err)
	require.True(t, csvwerr.IsCode(err, csvwerr.ErrDatatypeConfig))
}

func TestDatatypeAsDictCollapse(t *testing.T) {
	dt, err := NewDatatype("integer")
	require.NoError(t, err)
	require.Equal(t, "integer", dt.AsDict(true))

	dt, err = NewDatatype(map[string]any{"base": "string", "length": float64(5)})
	require.NoError(t, err)
	out := dt.AsDict(true)
	require.NotEqual(t, "string", out)
}
