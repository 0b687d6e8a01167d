package config

import (
	"os"
	"strconv"
)

// Config is built once at process start and passed by reference into the
// components that need it; nothing reads the environment after Load.
type Config struct {
	Addr                string
	DatabaseURL         string
	JWTSecret           string
	PaymentApprovalRate float64
}

func Load() Config {
	addr := os.Getenv("PHARMACY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	rate := 0.7
	if v := os.Getenv("PAYMENT_APPROVAL_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			rate = f
		}
	}

	return Config{
		Addr:                addr,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		PaymentApprovalRate: rate,
	}
}
