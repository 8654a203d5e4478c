package usecase

import (
	"math"
	"math/big"

	"github.com/store-locator/internal/domain"
)

var (
	bigHundred = big.NewInt(100)
	bigTwo     = big.NewInt(2)
)

// NormalizeDistance converts a raw index distance in meters into whole meters
// (truncated) and kilometers rounded half-up to two decimals. The rounding is
// done on the exact binary value of raw/1000.
func NormalizeDistance(raw float64) (km float64, meters int) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, 0
	}
	meters = int(raw)

	exact := new(big.Rat)
	exact.SetFloat64(raw / 1000)

	neg := exact.Sign() < 0
	exact.Abs(exact)

	// floor(x*100 + 1/2) == floor((2*num*100 + den) / (2*den))
	num := new(big.Int).Mul(exact.Num(), bigHundred)
	num.Mul(num, bigTwo)
	num.Add(num, exact.Denom())
	den := new(big.Int).Mul(exact.Denom(), bigTwo)
	hundredths := new(big.Int).Quo(num, den)

	km, _ = new(big.Rat).SetFrac(hundredths, bigHundred).Float64()
	if neg && km != 0 {
		km = -km
	}
	return km, meters
}

// normalizeStoreDistance fills the derived distance fields from the raw one.
func normalizeStoreDistance(sw domain.StoreWithDistance) domain.StoreWithDistance {
	sw.DistanceInKm, sw.DistanceInMeters = NormalizeDistance(sw.RawDistanceMeters)
	return sw
}
