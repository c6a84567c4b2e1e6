package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var (
	_ repository.KeyValueStore = (*KVRepository)(nil)
	_ repository.BatchWriter   = (*KVRepository)(nil)
)

// API subconjunto de *dynamodb.Client que usa el repositorio.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// kvItem ítem de la tabla. PK: pk = "<namespace>#<clave>".
type kvItem struct {
	PK        string `dynamodbav:"pk"`
	Value     []byte `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// KVRepository almacenamiento clave-valor sobre una tabla DynamoDB, aislado por namespace.
type KVRepository struct {
	ddb       API
	table     string
	namespace string
	now       func() time.Time
}

// NewKVRepository construye el adaptador.
func NewKVRepository(ddb API, table, namespace string) *KVRepository {
	return &KVRepository{ddb: ddb, table: table, namespace: namespace, now: time.Now}
}

func (r *KVRepository) pk(key string) string {
	return r.namespace + "#" + key
}

func (r *KVRepository) keyAttr(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: r.pk(key)},
	}
}

// EnsureTable crea la tabla (PAY_PER_REQUEST) si todavía no existe.
func (r *KVRepository) EnsureTable(ctx context.Context) error {
	_, err := r.ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("dynamodb: describir tabla %s: %w", r.table, err)
	}
	_, err = r.ddb.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(r.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: crear tabla %s: %w", r.table, err)
	}
	return nil
}

// Get lee una clave con lectura consistente.
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            r.keyAttr(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("dynamodb: get %q: %w", key, err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	var it kvItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, false, fmt.Errorf("dynamodb: decodificar %q: %w", key, err)
	}
	return it.Value, true, nil
}

func (r *KVRepository) item(key string, value []byte) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(kvItem{
		PK:        r.pk(key),
		Value:     value,
		UpdatedAt: r.now().UTC().Format(time.RFC3339Nano),
	})
}

// Set reemplaza el ítem completo.
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	av, err := r.item(key, value)
	if err != nil {
		return fmt.Errorf("dynamodb: codificar %q: %w", key, err)
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	return wrapWrite(key, err)
}

// Remove elimina el ítem; no falla si no existe.
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       r.keyAttr(key),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: delete %q: %w", key, err)
	}
	return nil
}

// SetBatch escribe todas las entradas en una transacción (todas o ninguna).
func (r *KVRepository) SetBatch(ctx context.Context, entries map[string][]byte) error {
	items := make([]types.TransactWriteItem, 0, len(entries))
	keys := make([]string, 0, len(entries))
	for key, value := range entries {
		av, err := r.item(key, value)
		if err != nil {
			return fmt.Errorf("dynamodb: codificar %q: %w", key, err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{TableName: aws.String(r.table), Item: av},
		})
		keys = append(keys, key)
	}
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	return wrapWrite(strings.Join(keys, ","), err)
}

// wrapWrite traduce el rechazo por tamaño de ítem (límite de 400 KB) a ErrQuotaExceeded.
func wrapWrite(key string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ValidationException" &&
		strings.Contains(strings.ToLower(apiErr.ErrorMessage()), "size") {
		return fmt.Errorf("dynamodb: put %q: %w: %v", key, repository.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("dynamodb: put %q: %w", key, err)
}
