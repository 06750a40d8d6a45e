package model

import (
	"github.com/elastic/go-elasticsearch/v9/typedapi/types"
)

// Document Elasticsearch文档约束接口
type Document interface {
	*ApplicantDoc
	GetID() string
	GetIndex() string
	GetTypeMapping() *types.TypeMapping
	GetEmbeddingString() string
	SetEmbedding(embedding []float32)
	GetEmbedding() []float32
}
