package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/elastic/go-elasticsearch/v9"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/model"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/embedding"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/llm"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/persistence/es"
	"github.com/dineshroxonn/linkedin-mcp-server/param"
)

// State 流程图的全局状态,检索节点从这里拿索引名、ES客户端和向量化器
type State struct {
	IndexName     string
	TypedEsClient *elasticsearch.TypedClient
	Embedder      embedding.Embedder
}

// AgentService 候选人问答:在已入库的候选人数据上做RAG对话
type AgentService[D model.Document] interface {
	Invoke(ctx context.Context, query string) (string, error)
	Stream(ctx context.Context, query string) error
}

type agentService[D model.Document] struct {
	llm      llm.LLM
	es       es.TypedEsClient[D]
	embedder embedding.Embedder
	graph    compose.Runnable[map[string]any, map[string]any]
}

func InitAgentService[D model.Document](
	ctx context.Context,
	llm llm.LLM,
	es es.TypedEsClient[D],
	embedder embedding.Embedder,
	params *param.Agent,
) (AgentService[D], error) {
	graph, err := initAgentGraph(ctx, llm, es, embedder, params)
	if err != nil {
		return nil, fmt.Errorf("创建流程图失败: %w", err)
	}
	return &agentService[D]{llm: llm, es: es, embedder: embedder, graph: graph}, nil
}

func initAgentGraph[D model.Document](
	ctx context.Context,
	llm llm.LLM,
	typedEsClient es.TypedEsClient[D],
	embedder embedding.Embedder,
	params *param.Agent,
) (compose.Runnable[map[string]any, map[string]any], error) {
	genState := func(ctx context.Context) *State {
		return &State{
			IndexName:     params.IndexName,
			TypedEsClient: typedEsClient.GetClient(),
			Embedder:      embedder,
		}
	}

	graph := compose.NewGraph[map[string]any, map[string]any](compose.WithGenLocalState(genState))
	if err := graph.AddLambdaNode("intentDetection", IntentDetection()); err != nil {
		return nil, err
	}
	if err := graph.AddLambdaNode("retriever", Retriever()); err != nil {
		return nil, err
	}
	if err := graph.AddChatTemplateNode("searchModePrompt", params.Prompt[param.PromptSearchMode]); err != nil {
		return nil, err
	}
	if err := graph.AddChatTemplateNode("chatModePrompt", params.Prompt[param.PromptChatMode]); err != nil {
		return nil, err
	}
	if err := graph.AddChatModelNode("llm", llm.Model(), compose.WithOutputKey("finalResponse")); err != nil {
		return nil, err
	}

	if err := graph.AddEdge(compose.START, "intentDetection"); err != nil {
		return nil, err
	}
	if err := graph.AddBranch("intentDetection", compose.NewGraphBranch(BranchCondition, map[string]bool{
		"retriever":      true,
		"chatModePrompt": true,
	})); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("retriever", "searchModePrompt"); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("searchModePrompt", "llm"); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("chatModePrompt", "llm"); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("llm", compose.END); err != nil {
		return nil, err
	}

	return graph.Compile(ctx)
}

func (as *agentService[D]) Invoke(ctx context.Context, query string) (string, error) {
	result, err := as.graph.Invoke(ctx, map[string]any{"query": query})
	if err != nil {
		log.Printf("流程图执行失败: %v", err)
		return "", err
	}
	if finalResponse, ok := result["finalResponse"].(*schema.Message); ok {
		return finalResponse.Content, nil
	}
	return "", errors.New("流程图没有产出最终回复")
}

func (as *agentService[D]) Stream(ctx context.Context, query string) error {
	result, err := as.graph.Stream(ctx, map[string]any{"query": query})
	if err != nil {
		log.Printf("流程图执行失败: %v", err)
		return err
	}
	for {
		chunk, err := result.Recv()
		if errors.Is(err, io.EOF) {
			fmt.Printf("\n\n")
			break
		}
		if err != nil {
			log.Printf("接收回复分片失败: %v", err)
			return err
		}
		if msg, ok := chunk["finalResponse"].(*schema.Message); ok {
			fmt.Print(msg.Content)
		}
	}
	return nil
}
