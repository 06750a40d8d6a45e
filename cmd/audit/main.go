package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/config"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/model"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/collector"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/persistence/es"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/service/audit"
)

//go:embed appconfig/appconfig.json
var appConfig []byte

// 对某个职位下已入库的候选人档案链接做批量探活
var (
	jobID       = "4012345678"
	concurrency = 4
	sampleSize  = 200
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

	collyCrawler := collector.InitCollyCrawler(appcfg)
	svc := audit.InitAuditService(collyCrawler, esClient)

	report, err := svc.VerifyIndexed(ctx, jobID, concurrency, sampleSize)
	if err != nil {
		log.Fatalf("核验失败: %v", err)
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}
