package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config agrupa toda a configuração lida do ambiente
type Config struct {
	Port string
	Mode string

	// Banco de documentos (catálogo, contatos, estoque)
	MongoURI      string
	MongoDatabase string

	// Banco relacional (pagamentos, webhooks)
	DatabaseUser     string
	DatabasePassword string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string

	// Mercado Pago
	MercadoPagoAccessToken string
	MercadoPagoPublicKey   string
	MercadoPagoBaseURL     string

	// SendGrid
	SendGridAPIKey string
	SenderEmail    string

	CORSOrigins []string

	OTLPEndpoint string
	ServiceName  string

	// Pool de tarefas em background (webhooks, emails)
	WorkerCount int
	WorkerQueue int
}

// Load monta a configuração a partir das variáveis de ambiente
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),
		Mode: getEnv("GIN_MODE", "debug"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "storefront"),

		DatabaseUser:     getEnv("DATABASE_USER", "root"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", "pass"),
		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseName:     getEnv("DATABASE_NAME", "payments_db"),

		MercadoPagoAccessToken: getEnv("MERCADO_PAGO_ACCESS_TOKEN", ""),
		MercadoPagoPublicKey:   getEnv("MERCADO_PAGO_PUBLIC_KEY", ""),
		MercadoPagoBaseURL:     getEnv("MERCADO_PAGO_BASE_URL", "https://api.mercadopago.com"),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "noreply@3dstuff.com.br"),

		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		ServiceName:  getEnv("SERVICE_NAME", "storefront-api"),

		WorkerCount: getEnvInt("WORKER_COUNT", 4),
		WorkerQueue: getEnvInt("WORKER_QUEUE", 64),
	}
}

// DatabaseDSN monta a string de conexão do PostgreSQL
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&pool_max_conns=25&pool_min_conns=5",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
