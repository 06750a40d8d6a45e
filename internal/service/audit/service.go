package audit

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/gocolly/colly/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/model"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/collector"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/persistence/es"
	"github.com/dineshroxonn/linkedin-mcp-server/param"
	estypes "github.com/elastic/go-elasticsearch/v9/typedapi/types"
)

// Report 一次核验的结果,Broken里是打不开的档案链接
type Report struct {
	Total     int      `json:"total"`
	Reachable int      `json:"reachable"`
	Broken    []string `json:"broken"`
}

// Service 档案链接核验:抓回来的profile_url随时间腐烂(改名/注销/转私密),
// 用普通HTTP请求批量探活,不占用浏览器会话
type Service interface {
	CollyCrawler() collector.CollyCrawler
	TypedEsClient() es.TypedEsClient[*model.ApplicantDoc]
	VerifyURLs(ctx context.Context, params *param.Audit) (*Report, error)
	VerifyIndexed(ctx context.Context, jobID string, concurrency, size int) (*Report, error)
}

type service struct {
	collyCrawler  collector.CollyCrawler
	typedEsClient es.TypedEsClient[*model.ApplicantDoc]

	mu        sync.Mutex
	reachable map[string]bool
}

func InitAuditService(
	collyCrawler collector.CollyCrawler,
	typedEsClient es.TypedEsClient[*model.ApplicantDoc],
) Service {
	s := &service{
		collyCrawler:  collyCrawler,
		typedEsClient: typedEsClient,
		reachable:     map[string]bool{},
	}
	collyCrawler.OnResponse(func(r *colly.Response) {
		s.mark(r.Request.URL.String(), r.StatusCode < 400)
	})
	collyCrawler.OnError(func(r *colly.Response, err error) {
		log.Printf("核验失败, url: %s, error: %s", r.Request.URL, err)
		s.mark(r.Request.URL.String(), false)
	})
	return s
}

func (s *service) CollyCrawler() collector.CollyCrawler {
	return s.collyCrawler
}

func (s *service) TypedEsClient() es.TypedEsClient[*model.ApplicantDoc] {
	return s.typedEsClient
}

// VerifyURLs 并发探活一组档案链接,单条失败只计入Broken不中止
func (s *service) VerifyURLs(ctx context.Context, params *param.Audit) (*Report, error) {
	if !params.IsValid() {
		return nil, fmt.Errorf("核验入参不合法: %+v", params)
	}
	urls := dedup(params.ProfileURLs)
	s.reset(urls)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(params.Concurrency)
	for _, url := range urls {
		g.Go(func() error {
			if err := s.collyCrawler.Visit(url); err != nil {
				log.Printf("核验请求未发出, url: %s, error: %s", url, err)
				s.mark(url, false)
			}
			return nil
		})
	}
	_ = g.Wait()
	s.collyCrawler.Wait()

	report := s.report(urls)
	log.Printf("核验完成, 共 %d 条, 可达 %d, 失效 %d", report.Total, report.Reachable, len(report.Broken))
	return report, nil
}

// VerifyIndexed 核验某个职位下已入库文档里的档案链接
func (s *service) VerifyIndexed(ctx context.Context, jobID string, concurrency, size int) (*Report, error) {
	query := &estypes.Query{
		Term: map[string]estypes.TermQuery{
			"job_id": {Value: jobID},
		},
	}
	docs, total, err := s.typedEsClient.SearchDoc(ctx, query, 0, size)
	if err != nil {
		return nil, fmt.Errorf("查询已入库文档失败, job_id: %s, error: %w", jobID, err)
	}
	log.Printf("职位 %s 下共 %d 条文档, 本次核验 %d 条", jobID, total, len(docs))

	urls := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.ProfileURL != "" {
			urls = append(urls, doc.ProfileURL)
		}
	}
	if len(urls) == 0 {
		return &Report{}, nil
	}
	return s.VerifyURLs(ctx, &param.Audit{Concurrency: concurrency, ProfileURLs: urls})
}

func (s *service) reset(urls []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reachable = make(map[string]bool, len(urls))
}

func (s *service) mark(url string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reachable[url] = ok
}

func (s *service) report(urls []string) *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	report := &Report{Total: len(urls)}
	for _, url := range urls {
		if s.reachable[url] {
			report.Reachable++
		} else {
			report.Broken = append(report.Broken, url)
		}
	}
	return report
}

func dedup(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, url := range urls {
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	return out
}
