// Package dynamo implementa los repositorios sobre la base documental
// (DynamoDB): una tabla por colección, nombres derivados del prefijo
// configurado. Las cargas masivas usan BatchWriteItem con reintento y
// backoff exponencial (ver batch_writer.go).
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	appconfig "github.com/tu-usuario/municare-api/pkg/config"
)

// NewClient inicializa el cliente DynamoDB. Con Endpoint definido apunta a
// dynamodb-local (desarrollo); con credenciales vacías usa la cadena por
// defecto del SDK (roles de instancia, perfil, etc.).
func NewClient(ctx context.Context, cfg appconfig.DynamoConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return client, nil
}

// Tables nombres de las tablas (colecciones del sistema original) con prefijo.
type Tables struct {
	Customers     string
	Queries       string
	QueryStats    string
	EmailLogs     string
	EmailBatches  string
	MeterReadings string
	Aged          string
	Levied        string
	Activities    string
	UsageStats    string
	Users         string
}

// NewTables deriva los nombres de tabla a partir del prefijo configurado.
func NewTables(prefix string) Tables {
	return Tables{
		Customers:     prefix + "customers",
		Queries:       prefix + "queries",
		QueryStats:    prefix + "customerQueryStats",
		EmailLogs:     prefix + "emailLogs",
		EmailBatches:  prefix + "emailBatches",
		MeterReadings: prefix + "meterReadings",
		Aged:          prefix + "detailed_aged_analysis",
		Levied:        prefix + "detailed_levied",
		Activities:    prefix + "userActivities",
		UsageStats:    prefix + "usageStats",
		Users:         prefix + "users",
	}
}

// Índices secundarios usados por las consultas del dashboard.
const (
	queryStatusIndex  = "status-index"  // queries: status + created_at
	queryAccountIndex = "account-index" // queries: account_number + created_at
	agedPeriodIndex   = "period-index"  // detailed_aged_analysis: period
)

// marshalItem serializa con soporte de encoding.TextMarshaler, necesario para
// que decimal.Decimal viaje como string y no como struct vacío.
func marshalItem(v interface{}) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMapWithOptions(v, func(o *attributevalue.EncoderOptions) {
		o.UseEncodingMarshalers = true
	})
}

// unmarshalItem contraparte de marshalItem.
func unmarshalItem(m map[string]types.AttributeValue, out interface{}) error {
	return attributevalue.UnmarshalMapWithOptions(m, out, func(o *attributevalue.DecoderOptions) {
		o.UseEncodingUnmarshalers = true
	})
}

// unmarshalItems deserializa una página completa.
func unmarshalItems[T any](items []map[string]types.AttributeValue) ([]*T, error) {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		v := new(T)
		if err := unmarshalItem(item, v); err != nil {
			return nil, fmt.Errorf("deserializar ítem: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}
