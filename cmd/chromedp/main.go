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

//使用go:embed嵌入appconfig.json文件
//运行前把appconfig/appconfig.json改成你自己的环境(ES地址、Ollama地址、用户数据目录)
//用户数据目录要指向一个已经登录过LinkedIn招聘后台的浏览器profile,引擎不处理登录

//go:embed appconfig/appconfig.json
var appConfig []byte

// jobID是招聘后台候选人列表URL里的jobId参数
// ratingFilter可选GOOD_FIT/MAYBE/NOT_A_FIT/ALL,ALL等于不过滤
var (
	jobID        = "4012345678"
	maxItems     = 50
	perItemDelay = 800 * time.Millisecond
	ratingFilter = param.RatingAll
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

	//运行前确保es服务启动完成
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

	driver := chrome.InitChromedpDriver(ctx, appcfg)
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
}
