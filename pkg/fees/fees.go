// Package fees computes the platform and insurance fees for an escrow
// transaction. All amounts are integer rupiah; percentage fees are computed in
// integer arithmetic and rounded half up to the nearest rupiah.
package fees

import (
	"errors"
)

// Item price bounds accepted by the platform.
const (
	MinItemPrice int64 = 10_000
	MaxItemPrice int64 = 10_000_000
)

// ErrPriceOutOfRange is returned when the item price falls outside the accepted bounds.
var ErrPriceOutOfRange = errors.New("item price out of accepted range")

const flatFee int64 = 5_000

// PlatformFee returns the tiered platform fee for an item price:
// a flat 5,000 under 500,000, 1% from 500,000 up to 5,000,000, and 0.8% up to
// the 10,000,000 cap.
func PlatformFee(itemPrice int64) (int64, error) {
	if itemPrice < MinItemPrice || itemPrice > MaxItemPrice {
		return 0, ErrPriceOutOfRange
	}
	switch {
	case itemPrice < 500_000:
		return flatFee, nil
	case itemPrice < 5_000_000:
		return percentOf(itemPrice, 100, 10_000), nil // 1%
	default:
		return percentOf(itemPrice, 80, 10_000), nil // 0.8%
	}
}

// InsuranceFee returns 0.2% of the item price when insurance is requested,
// otherwise zero.
func InsuranceFee(itemPrice int64, insured bool) int64 {
	if !insured {
		return 0
	}
	return percentOf(itemPrice, 20, 10_000) // 0.2%
}

// TotalAmount is what the buyer transfers to the virtual account.
func TotalAmount(itemPrice, platformFee, insuranceFee int64) int64 {
	return itemPrice + platformFee + insuranceFee
}

// Withdrawable is the amount released to the seller on completion, or refunded
// to the buyer on an approved complaint. Both fees stay with the platform.
func Withdrawable(totalAmount, platformFee, insuranceFee int64) int64 {
	return totalAmount - platformFee - insuranceFee
}

// percentOf computes amount * num / den, rounded half up.
func percentOf(amount, num, den int64) int64 {
	return (amount*num + den/2) / den
}
