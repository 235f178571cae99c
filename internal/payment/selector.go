package payment

import (
	"log"

	"phonemall-payments/internal/config"
)

// Provider names accepted in PAYMENT_PROVIDER.
const (
	ProviderManual       = "manual"
	ProviderGBPrimePay   = "gbprimepay"
	ProviderPaySolutions = "paysolutions"
)

// SelectProvider returns the adapter named by the configuration. Unknown
// names fall back to GB Prime Pay with a warning rather than failing, so a
// misconfigured deployment still takes payments on the default rail.
func SelectProvider(cfg *config.Config) Provider {
	switch cfg.Payment.Provider {
	case ProviderManual:
		return NewManualProvider(cfg.Bank)
	case ProviderGBPrimePay:
		return NewGBPrimePayProvider(cfg.GBPrimePay)
	case ProviderPaySolutions:
		return NewPaySolutionsProvider(cfg.PaySolutions)
	default:
		log.Printf("unknown payment provider %q, defaulting to gbprimepay", cfg.Payment.Provider)
		return NewGBPrimePayProvider(cfg.GBPrimePay)
	}
}
