package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
	Amazon   Amazon   `envPrefix:"AMAZON_"`
	Mailgun  Mailgun  `envPrefix:"MAILGUN_"`
	Auth     Auth     `envPrefix:"AUTH_"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
}

type Amazon struct {
	// LWA token endpoint used to mint SP API access tokens
	TokenURL string `env:"TOKEN_URL" envDefault:"https://api.amazon.com/auth/o2/token"`
	// SP API endpoint for the marketplace region
	EndpointURL          string `env:"ENDPOINT_URL" envDefault:"https://sellingpartnerapi-eu.amazon.com"`
	DefaultMarketplaceID string `env:"DEFAULT_MARKETPLACE_ID" envDefault:"A21TJRUUN4KGV"`
	// key material for encrypting seller credentials at rest
	CredentialsKey string `env:"CREDENTIALS_ENCRYPTION_KEY"`
}

type Mailgun struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.mailgun.net"`
	Domain     string `env:"DOMAIN"`
	APIKey     string `env:"API_KEY"`
	Sender     string `env:"SENDER"`
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
