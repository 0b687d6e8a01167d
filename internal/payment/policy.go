package payment

import (
	"crypto/rand"
	"encoding/binary"
)

// AuthorizationPolicy decides whether a payment is approved once all static
// validation has passed. The production policy simulates an issuer; a real
// gateway client would implement this same interface.
type AuthorizationPolicy interface {
	Authorize(amount float64, cardNumber string) bool
}

// ThresholdPolicy approves a payment when a uniform secure random draw in
// [0,1) lands above 1-rate, i.e. rate is the approval probability.
type ThresholdPolicy struct {
	rate float64
}

func NewThresholdPolicy(rate float64) *ThresholdPolicy {
	if rate < 0 || rate > 1 {
		rate = 0.7
	}
	return &ThresholdPolicy{rate: rate}
}

func (p *ThresholdPolicy) Authorize(amount float64, cardNumber string) bool {
	// the draw lives in [0,1), so the extremes need no randomness at all
	if p.rate <= 0 {
		return false
	}
	if p.rate >= 1 {
		return true
	}
	return secureFloat() > 1-p.rate
}

// secureFloat returns a uniform value in [0,1) from the system CSPRNG.
func secureFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// fail closed: an unreadable entropy source declines the payment
		return 0
	}
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}
