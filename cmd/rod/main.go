package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/config"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/entity"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/model"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/chrome"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/embedding"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/persistence/es"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/service/harvest"
	"github.com/dineshroxonn/linkedin-mcp-server/param"
)

//go:embed appconfig/appconfig.json
var appConfig []byte

// rod版入口,走stealth页面,规避站点的自动化检测
// 需要给单个候选人发站内信时把messageTo和messageText填上
var (
	jobID        = "4012345678"
	maxItems     = 50
	perItemDelay = 800 * time.Millisecond
	ratingFilter = param.RatingGoodFit

	messageTo   = ""
	messageText = ""
)

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
	if err := esClient.CreateIndexWithMapping(ctx); err != nil {
		log.Printf("创建索引失败(已存在时忽略): %v", err)
	}

	embedder, err := embedding.InitEmbedder(ctx, appcfg)
	if err != nil {
		log.Fatalf("初始化Embedder失败: %v", err)
	}

	driver, err := chrome.InitRodDriver(appcfg)
	if err != nil {
		log.Fatalf("初始化Rod浏览器失败: %v", err)
	}
	defer driver.Close()

	svc := harvest.InitHarvestService[*entity.Applicant, *model.ApplicantDoc](
		driver,
		esClient,
		embedder,
		harvest.LinkedInHiringProfile(),
		harvest.PacingFromConfig(appcfg),
		harvest.BudgetFromConfig(appcfg),
	)

	result, err := svc.HarvestAndIndex(ctx, &param.Harvest{
		JobID:        jobID,
		MaxItems:     maxItems,
		PerItemDelay: perItemDelay,
		RatingFilter: ratingFilter,
	})
	if err != nil {
		log.Fatalf("采集失败: %v", err)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))

	if messageTo != "" && messageText != "" {
		err := svc.SendMessage(ctx, &param.Message{
			JobID:         jobID,
			ApplicantName: messageTo,
			Text:          messageText,
		})
		if err != nil {
			log.Fatalf("发送站内信失败: %v", err)
		}
	}
}
