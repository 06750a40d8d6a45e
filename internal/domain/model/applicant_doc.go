package model

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/elastic/go-elasticsearch/v9/typedapi/types"
)

// ApplicantDoc 候选人在Elasticsearch中的文档结构
// embedding字段是headline+location拼接文本的向量,用于agent的knn检索
type ApplicantDoc struct {
	JobID       string    `json:"job_id"`
	Name        string    `json:"name"`
	Headline    string    `json:"headline"`
	Location    string    `json:"location"`
	ProfileURL  string    `json:"profile_url"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	HarvestedAt string    `json:"harvested_at"`
	Embedding   []float32 `json:"embedding,omitempty"`

	// Index 入库目标索引名,来自配置,不序列化进文档
	Index string `json:"-"`
}

// GetID 职位ID+姓名哈希,保证同一职位下同名候选人幂等入库
func (d *ApplicantDoc) GetID() string {
	sum := sha1.Sum([]byte(d.JobID + "#" + d.Name))
	return hex.EncodeToString(sum[:])
}

func (d *ApplicantDoc) GetIndex() string {
	return d.Index
}

// GetEmbeddingString 参与向量化的文本,姓名不参与(对语义检索无意义)
func (d *ApplicantDoc) GetEmbeddingString() string {
	parts := make([]string, 0, 2)
	if d.Headline != "" {
		parts = append(parts, d.Headline)
	}
	if d.Location != "" {
		parts = append(parts, d.Location)
	}
	return strings.Join(parts, " / ")
}

func (d *ApplicantDoc) SetEmbedding(embedding []float32) {
	d.Embedding = embedding
}

func (d *ApplicantDoc) GetEmbedding() []float32 {
	return d.Embedding
}

func (d *ApplicantDoc) GetTypeMapping() *types.TypeMapping {
	dims := 768
	embedding := types.NewDenseVectorProperty()
	embedding.Dims = &dims
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"job_id":       types.NewKeywordProperty(),
			"name":         types.NewTextProperty(),
			"headline":     types.NewTextProperty(),
			"location":     types.NewTextProperty(),
			"profile_url":  types.NewKeywordProperty(),
			"phone":        types.NewKeywordProperty(),
			"email":        types.NewKeywordProperty(),
			"harvested_at": types.NewDateProperty(),
			"embedding":    embedding,
		},
	}
}
