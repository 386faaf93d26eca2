// Package money реализует тип денежной суммы с фиксированной точкой.
//
// Суммы хранятся в копейках (int64), что исключает ошибки округления float64
// при суммировании. В JSON сумма сериализуется числом с двумя знаками после
// запятой, при разборе третий и последующие знаки округляются по правилу
// "половина вверх".
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents представляет денежную сумму в минорных единицах (копейках).
type Cents int64

// ParseDecimal разбирает десятичную строку ("250.00", "0.01") в Cents.
//
// Допускается знак минус и произвольное число дробных знаков; всё после
// второго знака округляется половиной вверх.
func ParseDecimal(s string) (Cents, error) {
	const op = "money.ParseDecimal"
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return 0, fmt.Errorf("%s: empty amount", op)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%s: invalid amount %q", op, s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid amount %q", op, s)
	}
	const maxSafe = (1<<63 - 1 - 99) / 100
	if iv > maxSafe {
		return 0, fmt.Errorf("%s: amount %q out of range", op, s)
	}

	var frac int64
	if len(fracPart) > 0 {
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("%s: invalid amount %q", op, s)
			}
		}
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	total := iv*100 + frac
	if neg {
		total = -total
	}
	return Cents(total), nil
}

// Float64 возвращает сумму в основных единицах как float64.
// Использовать только для вычислений, где потеря точности допустима.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// String форматирует сумму с двумя знаками после запятой, например "250.00".
func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON сериализует сумму как число JSON с двумя знаками после запятой.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON разбирает число JSON (или строку с числом) в Cents.
func (c *Cents) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return nil
	}
	v, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
