package dynamodb_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	ddbkv "github.com/jhoicas/Pedidos-api/internal/infrastructure/dynamodb"
)

// fakeDynamo tabla en memoria indexada por pk.
type fakeDynamo struct {
	items    map[string]map[string]types.AttributeValue
	putErr   error
	created  bool
	describe error
}

func newFake() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func pkOf(item map[string]types.AttributeValue) string {
	return item["pk"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[pkOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.items[pkOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	delete(f.items, pkOf(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	for _, ti := range in.TransactItems {
		f.items[pkOf(ti.Put.Item)] = ti.Put.Item
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (f *fakeDynamo) DescribeTable(_ context.Context, _ *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describe != nil {
		return nil, f.describe
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func (f *fakeDynamo) CreateTable(_ context.Context, _ *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.created = true
	return &dynamodb.CreateTableOutput{}, nil
}

func TestKVRepository_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	repo := ddbkv.NewKVRepository(fake, "pedidos_kv", "tienda")

	_, ok, err := repo.Get(ctx, "clientsDB")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "clientsDB", []byte(`[{"id":"c1"}]`)))
	assert.Contains(t, fake.items, "tienda#clientsDB")

	v, ok, err := repo.Get(ctx, "clientsDB")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"c1"}]`, string(v))

	require.NoError(t, repo.Remove(ctx, "clientsDB"))
	_, ok, _ = repo.Get(ctx, "clientsDB")
	assert.False(t, ok)
}

func TestKVRepository_SetBatch(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	repo := ddbkv.NewKVRepository(fake, "pedidos_kv", "tienda")

	require.NoError(t, repo.SetBatch(ctx, map[string][]byte{
		"clientsDB": []byte(`[]`),
		"ordersDB":  []byte(`[]`),
	}))
	assert.Len(t, fake.items, 2)
}

func TestKVRepository_ItemDemasiadoGrandeEsCuota(t *testing.T) {
	fake := newFake()
	fake.putErr = &smithy.GenericAPIError{Code: "ValidationException", Message: "Item size has exceeded the maximum allowed size"}
	repo := ddbkv.NewKVRepository(fake, "pedidos_kv", "tienda")

	err := repo.Set(context.Background(), "ordersDB", []byte(`[]`))
	assert.ErrorIs(t, err, repository.ErrQuotaExceeded)

	fake.putErr = &smithy.GenericAPIError{Code: "ProvisionedThroughputExceededException", Message: "throttled"}
	err = repo.Set(context.Background(), "ordersDB", []byte(`[]`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrQuotaExceeded)
}

func TestKVRepository_EnsureTable(t *testing.T) {
	fake := newFake()
	repo := ddbkv.NewKVRepository(fake, "pedidos_kv", "tienda")
	require.NoError(t, repo.EnsureTable(context.Background()))
	assert.False(t, fake.created)

	fake.describe = &types.ResourceNotFoundException{}
	require.NoError(t, repo.EnsureTable(context.Background()))
	assert.True(t, fake.created)
}
