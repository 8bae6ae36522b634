package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	JWT    JWTConfig
	Dynamo DynamoConfig
	Email  EmailConfig
	SMS    SMSConfig
	Upload UploadConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// DynamoConfig acceso a la base documental (DynamoDB).
// Endpoint es opcional: apunta a dynamodb-local en desarrollo; vacío = AWS.
type DynamoConfig struct {
	Region      string
	AccessKey   string
	SecretKey   string
	Endpoint    string
	TablePrefix string // ej. "municare_" -> municare_customers, municare_queries, ...
}

// EmailConfig proveedor de correo (SendGrid) y parámetros de campañas masivas.
type EmailConfig struct {
	SendGridKey string
	FromEmail   string
	FromName    string
	BatchSize   int // destinatarios por llamada al proveedor
}

// SMSConfig proveedor de mensajería (API HTTP con token).
type SMSConfig struct {
	BaseURL  string
	Token    string
	SenderID string
}

// UploadConfig parámetros de la carga masiva de registros financieros.
// BatchSize se limita al máximo del BatchWriteItem (25 ítems por lote).
type UploadConfig struct {
	BatchSize   int
	MaxRetries  int
	BaseDelayMs int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, DYNAMO_REGION, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno (Viper las lee automáticamente si AutomaticEnv está activo)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "municare"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "municare"),
		},
		Dynamo: DynamoConfig{
			Region:      getString(v, "DYNAMO_REGION", "af-south-1"),
			AccessKey:   getString(v, "DYNAMO_ACCESS_KEY", ""),
			SecretKey:   getString(v, "DYNAMO_SECRET_KEY", ""),
			Endpoint:    getString(v, "DYNAMO_ENDPOINT", ""),
			TablePrefix: getString(v, "DYNAMO_TABLE_PREFIX", "municare_"),
		},
		Email: EmailConfig{
			SendGridKey: getString(v, "SENDGRID_API_KEY", ""),
			FromEmail:   getString(v, "EMAIL_FROM", "no-reply@municare.local"),
			FromName:    getString(v, "EMAIL_FROM_NAME", "Municare"),
			BatchSize:   getInt(v, "EMAIL_BATCH_SIZE", 100),
		},
		SMS: SMSConfig{
			BaseURL:  getString(v, "SMS_BASE_URL", ""),
			Token:    getString(v, "SMS_TOKEN", ""),
			SenderID: getString(v, "SMS_SENDER_ID", "MUNICARE"),
		},
		Upload: UploadConfig{
			BatchSize:   getInt(v, "UPLOAD_BATCH_SIZE", 25),
			MaxRetries:  getInt(v, "UPLOAD_MAX_RETRIES", 5),
			BaseDelayMs: getInt(v, "UPLOAD_BASE_DELAY_MS", 200),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
