package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	Auth         Auth         `envPrefix:"AUTH_"`
	Payment      Payment      `envPrefix:"PAYMENT_"`
	GBPrimePay   GBPrimePay   `envPrefix:"GBPRIMEPAY_"`
	PaySolutions PaySolutions `envPrefix:"PAYSOLUTIONS_"`
	Bank         BankAccount  `envPrefix:"BANK_"`
}

// Payment selects the active provider adapter by name.
type Payment struct {
	Provider string `env:"PROVIDER" envDefault:"gbprimepay"`
}

type GBPrimePay struct {
	PublicKey   string `env:"PUBLIC_KEY"`
	SecretKey   string `env:"SECRET_KEY"`
	MerchantID  string `env:"MERCHANT_ID"`
	APIURL      string `env:"API_URL" envDefault:"https://api.gbprimepay.com"`
	CheckoutURL string `env:"CHECKOUT_URL" envDefault:"https://api.gbprimepay.com/v3/checkout"`
}

type PaySolutions struct {
	MerchantID   string `env:"MERCHANT_ID"`
	BearerToken  string `env:"BEARER_TOKEN"`
	CurrencyCode string `env:"CURRENCY_CODE" envDefault:"00"`
	Language     string `env:"LANGUAGE" envDefault:"TH"`
	PaymentURL   string `env:"PAYMENT_URL" envDefault:"https://payments.paysolutions.asia/payment"`
	PromptPayURL string `env:"PROMPTPAY_URL" envDefault:"https://apis.paysolutions.asia/tep/api/v2/promptpaynew"`
	PostbackURL  string `env:"POSTBACK_URL"`
}

// BankAccount holds the receiving account shown by the manual provider.
// Loaded once at startup, immutable afterwards.
type BankAccount struct {
	BankName      string `env:"NAME" envDefault:"กสิกรไทย"`
	AccountNumber string `env:"ACCOUNT_NUMBER" envDefault:"045-1-62400-8"`
	AccountName   string `env:"ACCOUNT_NAME" envDefault:"นาย วรพล กิจติยะโสภณ"`
	PromptPayID   string `env:"PROMPTPAY_ID" envDefault:"0451624008"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
