package rowbinary

import "time"

// Days counts whole days since 1970-01-01.
type Days int32

// UnixSeconds counts whole seconds since the Unix epoch, UTC.
type UnixSeconds uint32

// Seconds counts whole seconds and may be negative, used for the Time
// kind.
type Seconds int32

// Ticks counts 100-nanosecond units, the common host resolution used to
// represent DateTime64/Time64 values regardless of their wire precision.
type Ticks int64

var epochUTC = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

func daysBetween(t time.Time) Days {
	return Days(t.Sub(epochUTC) / (24 * time.Hour))
}

// Date/Date32 valid ranges.
var (
	minDate32 = daysBetween(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC))
	maxDate32 = daysBetween(time.Date(2299, 12, 31, 0, 0, 0, 0, time.UTC))
	maxDate   = Days(65535) // 2149-06-06, the largest value a u16 can hold
)

// DateTime valid range: epoch .. 2106-02-07 06:28:15.
const maxDateTime = UnixSeconds(4294967295)

// DateTime64 valid range: 1900-01-01 .. 2299-12-31 23:59:59.999,
// expressed in Ticks.
var (
	minDateTime64 = Ticks(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Sub(epochUTC) / 100)
	maxDateTime64 = Ticks(time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC).Sub(epochUTC)/100 - 1)
)

// Time/Time64 valid range: +/- 999:59:59.
const maxTimeSeconds = Seconds(999*3600 + 59*60 + 59)

var maxTime64Ticks = Ticks(maxTimeSeconds) * 10000000

// precisionFactor returns (numerator, denominator) such that
// ticks100ns = wireValue * numerator / denominator. Precisions 8 and 9
// divide, losing sub-100ns resolution: a documented, intentional lossy
// conversion.
func precisionFactor(p int) (num, den int64, err error) {
	switch p {
	case 0:
		return 10000000, 1, nil
	case 1:
		return 1000000, 1, nil
	case 2:
		return 100000, 1, nil
	case 3:
		return 10000, 1, nil
	case 4:
		return 1000, 1, nil
	case 5:
		return 100, 1, nil
	case 6:
		return 10, 1, nil
	case 7:
		return 1, 1, nil
	case 8:
		return 1, 10, nil
	case 9:
		return 1, 100, nil
	default:
		return 0, 0, &UnsupportedPrecisionError{Precision: p}
	}
}
