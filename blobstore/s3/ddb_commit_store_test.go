package s3

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pointmerge/blobstore"
)

// mockDDBClient is an in-memory DynamoDB mock for testing.
type mockDDBClient struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue // base_uri:version -> item
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	baseURI := params.Item["base_uri"].(*types.AttributeValueMemberS).Value
	version := params.Item["version"].(*types.AttributeValueMemberN).Value
	key := baseURI + ":" + version

	if aws.ToString(params.ConditionExpression) == "attribute_not_exists(version)" {
		if _, exists := m.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}

	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	baseURI := params.ExpressionAttributeValues[":uri"].(*types.AttributeValueMemberS).Value

	var items []map[string]types.AttributeValue
	for _, item := range m.items {
		if item["base_uri"].(*types.AttributeValueMemberS).Value == baseURI {
			items = append(items, item)
		}
	}

	version := func(item map[string]types.AttributeValue) uint64 {
		v, _ := strconv.ParseUint(item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		return v
	}
	slices.SortFunc(items, func(a, b map[string]types.AttributeValue) int {
		va, vb := version(a), version(b)
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		default:
			return 0
		}
	})

	if params.Limit != nil && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

// racingDDBClient reports a conditional check failure on every PutItem.
type racingDDBClient struct {
	*mockDDBClient
}

func (racingDDBClient) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
}

func newTestDDBCommitStore(ddb DDBClient, baseURI string) *DDBCommitStore {
	return NewDDBCommitStore(blobstore.NewMemoryStore(), ddb, "pointmerge-commits", baseURI)
}

func readCurrent(t *testing.T, store blobstore.Store) string {
	t.Helper()
	data, err := blobstore.ReadAll(t.Context(), store, blobstore.CurrentName)
	require.NoError(t, err)
	return string(data)
}

func TestDDBCommitStore_FirstCommit(t *testing.T) {
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	require.NoError(t, store.Put(t.Context(), blobstore.CurrentName, []byte("merged-00001.pmrg")))
	assert.Equal(t, "merged-00001.pmrg", readCurrent(t, store))

	v, err := store.Version(t.Context())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestDDBCommitStore_ManyCommits(t *testing.T) {
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	for i := 1; i <= 12; i++ {
		require.NoError(t, store.Put(t.Context(), blobstore.CurrentName, fmt.Appendf(nil, "merged-%05d.pmrg", i)))
	}

	assert.Equal(t, "merged-00012.pmrg", readCurrent(t, store))
	v, err := store.Version(t.Context())
	require.NoError(t, err)
	assert.Equal(t, uint64(12), v)
}

func TestDDBCommitStore_ConcurrentCommits(t *testing.T) {
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")
	require.NoError(t, store.Put(t.Context(), blobstore.CurrentName, []byte("merged-00001.pmrg")))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Put(t.Context(), blobstore.CurrentName, fmt.Appendf(nil, "merged-%05d.pmrg", i+2))
			if err != nil && !errors.Is(err, ErrConcurrentModification) {
				t.Errorf("unexpected error: %v", err)
			}
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Positive(t, successes)
	v, err := store.Version(t.Context())
	require.NoError(t, err)
	assert.Equal(t, uint64(1+successes), v)
}

func TestDDBCommitStore_Conflict(t *testing.T) {
	store := newTestDDBCommitStore(racingDDBClient{newMockDDBClient()}, "s3://b/p/")
	err := store.Put(t.Context(), blobstore.CurrentName, []byte("x"))
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestDDBCommitStore_NotFoundBeforeCommit(t *testing.T) {
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	_, err := store.Open(t.Context(), blobstore.CurrentName)
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	names, err := store.List(t.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDDBCommitStore_IsolatedNamespaces(t *testing.T) {
	ddb := newMockDDBClient()
	store1 := newTestDDBCommitStore(ddb, "s3://bucket-a/path/")
	store2 := newTestDDBCommitStore(ddb, "s3://bucket-b/path/")

	require.NoError(t, store1.Put(t.Context(), blobstore.CurrentName, []byte("A.pmrg")))
	require.NoError(t, store2.Put(t.Context(), blobstore.CurrentName, []byte("B.pmrg")))

	assert.Equal(t, "A.pmrg", readCurrent(t, store1))
	assert.Equal(t, "B.pmrg", readCurrent(t, store2))
}

func TestDDBCommitStore_DelegatesBlobs(t *testing.T) {
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://b/p/")
	ctx := t.Context()

	require.NoError(t, store.Put(ctx, "merged-1.pmrg", []byte("payload")))
	require.NoError(t, store.Put(ctx, blobstore.CurrentName, []byte("merged-1.pmrg")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{blobstore.CurrentName, "merged-1.pmrg"}, names)

	names, err = store.List(ctx, "merged")
	require.NoError(t, err)
	assert.Equal(t, []string{"merged-1.pmrg"}, names)

	assert.ErrorIs(t, store.Delete(ctx, blobstore.CurrentName), ErrManagedBlob)
	require.NoError(t, store.Delete(ctx, "merged-1.pmrg"))
	_, err = store.Open(ctx, "merged-1.pmrg")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
