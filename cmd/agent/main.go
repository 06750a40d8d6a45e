package main

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/tool/duckduckgo/v2"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/config"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/model"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/embedding"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/llm"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/persistence/es"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/service/agent"
	"github.com/dineshroxonn/linkedin-mcp-server/param"
)

//go:embed appconfig/appconfig.json
var appConfig []byte

// 在已入库的候选人数据上做RAG问答
// 输入以"查询模式"或"搜索模式"开头时检索候选人索引,否则普通聊天
func main() {
	appcfg, err := config.ParseConfig(appConfig)
	if err != nil {
		log.Fatalf("解析配置失败: %v", err)
	}
	if err := appcfg.Validate(); err != nil {
		log.Fatalf("配置不合法: %v", err)
	}

	ctx := context.Background()

	esClient, err := es.InitTypedEsClient[*model.ApplicantDoc](appcfg)
	if err != nil {
		log.Fatalf("初始化Elasticsearch客户端失败: %v", err)
	}
	embedder, err := embedding.InitEmbedder(ctx, appcfg)
	if err != nil {
		log.Fatalf("初始化Embedder失败: %v", err)
	}
	chatModel, err := llm.InitLLM(ctx, appcfg)
	if err != nil {
		log.Fatalf("初始化大模型失败: %v", err)
	}

	agentParam := &param.Agent{
		IndexName: appcfg.Elasticsearch.Index,
		Prompt: map[param.PromptType]*prompt.DefaultChatTemplate{
			param.PromptSearchMode: prompt.FromMessages(schema.FString,
				schema.SystemMessage("你是招聘助理,根据下面的候选人资料回答问题,资料里没有的不要编造。\n\n{referenceDocs}"),
				schema.UserMessage("{query}"),
			),
			param.PromptChatMode: prompt.FromMessages(schema.FString,
				schema.SystemMessage("你是招聘助理,回答招聘相关的问题。"),
				schema.UserMessage("{query}"),
			),
		},
		DuckDuckGoSearch: param.SearchConfig{
			MaxResults: 5,
			Region:     duckduckgo.RegionCN,
			Timeout:    10 * time.Second,
		},
	}

	svc, err := agent.InitAgentService(ctx, chatModel, esClient, embedder, agentParam)
	if err != nil {
		log.Fatalf("初始化Agent失败: %v", err)
	}

	fmt.Println("候选人问答已就绪,输入问题(exit退出):")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" {
			break
		}
		if err := svc.Stream(ctx, query); err != nil {
			log.Printf("回答失败: %v", err)
		}
	}
}
