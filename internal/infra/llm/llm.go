package llm

import (
	"context"
	"strconv"

	einomodel "github.com/cloudwego/eino/components/model"

	"github.com/cloudwego/eino-ext/components/model/ollama"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/config"
)

// LLM 聊天模型封装,agent图里只需要BaseChatModel能力
type LLM interface {
	Model() einomodel.BaseChatModel
}

type ollamaLLM struct {
	model *ollama.ChatModel
}

// InitLLM 初始化Ollama聊天模型
func InitLLM(ctx context.Context, cfg *config.Config) (LLM, error) {
	model, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.Host + ":" + strconv.Itoa(cfg.LLM.Port),
	})
	if err != nil {
		return nil, err
	}
	return &ollamaLLM{model: model}, nil
}

func (l *ollamaLLM) Model() einomodel.BaseChatModel {
	return l.model
}
