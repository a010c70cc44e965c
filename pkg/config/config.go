package config

import "time"

// DB holds database connection settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Jwt holds token signing settings.
type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// RateLimit holds request throttling settings.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Txn bounds the storage transaction: no operation may block indefinitely,
// and a deadline hit is surfaced as a retryable concurrency conflict.
type Txn struct {
	Timeout time.Duration `envconfig:"TIMEOUT" default:"5s"`
}

// Transfer holds the tenancy knobs for fund transfers.
type Transfer struct {
	// AllowCrossTenant permits super_admin transfers across cooperative banks.
	AllowCrossTenant bool `envconfig:"ALLOW_CROSS_TENANT" default:"false"`
}

// Log holds logger settings.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[coopbank]"`
}

// Server holds HTTP listener settings.
type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

// App is the root configuration, populated from the environment.
type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Txn       *Txn       `envconfig:"TXN"`
	Transfer  *Transfer  `envconfig:"TRANSFER"`
}
