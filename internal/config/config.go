package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret     string `env:"JWT_SECRET" envDefault:"default_secret"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`

	Discord  Discord  `envPrefix:"DISCORD_"`
	Exchange Exchange `envPrefix:"EXCHANGE_"`
}

type Discord struct {
	WebhookURL  string `env:"WEBHOOK_URL"`
	StaffRoleID string `env:"STAFF_ROLE_ID"`
}

type Exchange struct {
	BaseAPIURL string `env:"BASE_API_URL" envDefault:"https://api.exchangerate-api.com/v4/latest/NPR"`
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
