package es

import (
	"context"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/typedapi/types"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/model"
)

// TypedEsClient 候选人文档的Elasticsearch客户端
// 所有文档结构体要实现model.Document的方法
type TypedEsClient[D model.Document] interface {
	GetClient() *elasticsearch.TypedClient
	GetIndex() string
	CreateIndexWithMapping(ctx context.Context) error
	DeleteIndex(ctx context.Context) error
	IndexDocWithID(ctx context.Context, doc D) error
	BulkIndexDocsWithID(ctx context.Context, docs []D) error
	GetDoc(ctx context.Context, id string) (D, error)
	CountDocs(ctx context.Context) (int64, error)
	SearchDoc(ctx context.Context, query *types.Query, from, size int) ([]D, int64, error)
	KnnSearch(ctx context.Context, field string, vector []float32, k int) ([]D, error)
	DeleteDoc(ctx context.Context, id string) error
}
