package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// CoordinateScale is the number of fractional digits stored for latitude
// and longitude. Client values with more precision are rounded on write.
const CoordinateScale = 8

// Column identifies a fixed-precision coordinate column.
type Column int

const (
	LatitudeColumn Column = iota
	LongitudeColumn
)

// Precision returns the total significant digits the column holds:
// numeric(10,8) for latitude, numeric(11,8) for longitude.
func (c Column) Precision() int {
	if c == LongitudeColumn {
		return 11
	}
	return 10
}

func (c Column) String() string {
	if c == LongitudeColumn {
		return "longitude"
	}
	return "latitude"
}

// Decimal is a fixed-point number: unscaled * 10^-scale.
// It is the storage form of coordinates and is rendered as a JSON string,
// matching what Postgres returns for numeric columns.
type Decimal struct {
	unscaled int64
	scale    int32
}

// NewDecimal returns unscaled * 10^-scale.
func NewDecimal(unscaled int64, scale int32) Decimal {
	return Decimal{unscaled: unscaled, scale: scale}
}

// ToStorage renders v at the column's scale, rounding to the nearest
// representable value. Range checking is the validator's job; v must be
// finite and fit the column, which every validated coordinate does.
func ToStorage(v float64, col Column) Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("domain.ToStorage: non-finite %s %v", col, v))
	}
	d, err := ParseDecimal(strconv.FormatFloat(v, 'f', CoordinateScale, 64))
	if err != nil {
		panic(fmt.Sprintf("domain.ToStorage: %s %v: %v", col, v, err))
	}
	return d
}

// FromStorage converts a stored coordinate back to a float64 for read paths.
func FromStorage(d Decimal) float64 {
	f, _ := strconv.ParseFloat(d.String(), 64)
	return f
}

// ParseDecimal parses a plain decimal string ("-12.3456") keeping the
// number of fractional digits it was written with as the scale.
func ParseDecimal(s string) (Decimal, error) {
	if s == "" {
		return Decimal{}, errors.New("empty decimal")
	}
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if hasDot && fracPart == "" {
		return Decimal{}, fmt.Errorf("invalid decimal %q", s)
	}
	digits := intPart + fracPart
	if strings.ContainsAny(digits[1:], "+-") {
		return Decimal{}, fmt.Errorf("invalid decimal %q", s)
	}
	u, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{unscaled: u, scale: int32(len(fracPart))}, nil
}

// Scale returns the number of fractional digits.
func (d Decimal) Scale() int32 { return d.scale }

// Rescale returns d with exactly scale fractional digits. Reducing the
// scale rounds half away from zero, as Postgres does for numeric(p,s).
func (d Decimal) Rescale(scale int32) Decimal {
	u := d.unscaled
	for s := d.scale; s < scale; s++ {
		u *= 10
	}
	for s := d.scale; s > scale; s-- {
		q, r := u/10, u%10
		switch {
		case r >= 5:
			q++
		case r <= -5:
			q--
		}
		u = q
	}
	return Decimal{unscaled: u, scale: scale}
}

// Equal reports whether d and o denote the same number.
func (d Decimal) Equal(o Decimal) bool {
	s := max(d.scale, o.scale)
	return d.Rescale(s).unscaled == o.Rescale(s).unscaled
}

func (d Decimal) String() string {
	neg := d.unscaled < 0
	abs := uint64(d.unscaled)
	if neg {
		abs = -abs
	}
	digits := strconv.FormatUint(abs, 10)
	if d.scale > 0 {
		if pad := int(d.scale) + 1 - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}
		cut := len(digits) - int(d.scale)
		digits = digits[:cut] + "." + digits[cut:]
	}
	if neg {
		return "-" + digits
	}
	return digits
}

// MarshalJSON renders the decimal as a JSON string.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NumericValue lets pgx encode a Decimal into a numeric parameter.
func (d Decimal) NumericValue() (pgtype.Numeric, error) {
	return pgtype.Numeric{Int: big.NewInt(d.unscaled), Exp: -d.scale, Valid: true}, nil
}

// ScanNumeric lets pgx scan a numeric column into a Decimal.
func (d *Decimal) ScanNumeric(n pgtype.Numeric) error {
	if !n.Valid {
		return errors.New("cannot scan NULL into domain.Decimal")
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return errors.New("cannot scan non-finite numeric into domain.Decimal")
	}
	i := new(big.Int).Set(n.Int)
	var scale int32
	if n.Exp >= 0 {
		i.Mul(i, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
	} else {
		scale = -n.Exp
	}
	if !i.IsInt64() {
		return fmt.Errorf("numeric %s out of range for domain.Decimal", i)
	}
	*d = Decimal{unscaled: i.Int64(), scale: scale}
	return nil
}
