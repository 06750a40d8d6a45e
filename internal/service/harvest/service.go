package harvest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/entity"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/model"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/chrome"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/embedding"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/persistence/es"
	"github.com/dineshroxonn/linkedin-mcp-server/param"
)

// Service 候选人采集服务:批量加载+扫描抽取的完整编排,
// 外加向量化入库与单人站内信两个延伸操作
type Service[A entity.Harvestable[D], D model.Document] interface {
	Driver() chrome.PageDriver
	TypedEsClient() es.TypedEsClient[D]
	Embedder() embedding.Embedder
	Harvest(ctx context.Context, params *param.Harvest) (*entity.HarvestResult, error)
	HarvestAndIndex(ctx context.Context, params *param.Harvest) (*entity.HarvestResult, error)
	SendMessage(ctx context.Context, params *param.Message) error
}

type service[A entity.Harvestable[D], D model.Document] struct {
	driver        chrome.PageDriver
	typedEsClient es.TypedEsClient[D]
	embedder      embedding.Embedder
	profile       *Profile
	pacing        Pacing
	budget        Budget

	loader     *Loader
	discoverer *Discoverer
	extractor  *Extractor
}

func InitHarvestService[A entity.Harvestable[D], D model.Document](
	driver chrome.PageDriver,
	typedEsClient es.TypedEsClient[D],
	embedder embedding.Embedder,
	profile *Profile,
	pacing Pacing,
	budget Budget,
) Service[A, D] {
	return &service[A, D]{
		driver:        driver,
		typedEsClient: typedEsClient,
		embedder:      embedder,
		profile:       profile,
		pacing:        pacing,
		budget:        budget,
		loader:        NewLoader(driver, profile, pacing, budget),
		discoverer:    NewDiscoverer(driver, profile),
		extractor:     NewExtractor(driver, profile, pacing),
	}
}

func (s *service[A, D]) Driver() chrome.PageDriver {
	return s.driver
}

func (s *service[A, D]) TypedEsClient() es.TypedEsClient[D] {
	return s.typedEsClient
}

func (s *service[A, D]) Embedder() embedding.Embedder {
	return s.embedder
}

// Harvest 执行一次完整采集:导航→落点检查→批量加载→回顶→逐条抽取
// 只有落点错误和空列表会整体失败,其余失败都降级为部分结果
func (s *service[A, D]) Harvest(ctx context.Context, params *param.Harvest) (*entity.HarvestResult, error) {
	if !params.IsValid() {
		return nil, fmt.Errorf("采集入参不合法: %+v", params)
	}

	url := s.buildListURL(params)
	log.Printf("开始采集, job_id: %s, url: %s", params.JobID, url)
	if err := s.driver.InitAndNavigate(url); err != nil {
		return nil, fmt.Errorf("导航失败: %w", err)
	}
	s.driver.Sleep(s.pacing.LandingSettle)

	// 落点检查必须在任何加载动作之前:跳转到登录页/无权限页时
	// 继续操作只会产出垃圾数据
	current, err := s.driver.CurrentURL()
	if err != nil {
		return nil, fmt.Errorf("读取当前URL失败: %w", err)
	}
	if !s.landedOK(current) {
		return nil, newHarvestError(KindAccessDenied,
			"导航落点不在目标列表页, 可能无访问权限或会话已过期",
			map[string]string{"job_id": params.JobID, "current_url": current})
	}

	count := s.loader.CountVisible()
	if count == 0 {
		// 慢渲染和真空列表外观相同,延长等待后再判定
		log.Printf("首屏未见列表项, 延长等待 %s 后重试", s.pacing.ExtendedSettle)
		s.driver.WaitReady(s.profile.ItemMarker, s.pacing.ExtendedSettle)
		count = s.loader.CountVisible()
	}
	if count == 0 {
		return nil, newHarvestError(KindNoItemsFound,
			fmt.Sprintf("职位 %s 下没有发现候选人", params.JobID),
			map[string]string{"job_id": params.JobID})
	}

	loaded := s.loader.Expand(ctx, params.MaxItems)
	log.Printf("批量加载完成, job_id: %s, 已加载: %d", params.JobID, loaded)

	if err := s.driver.ScrollContainerToTop(s.profile.ListContainer); err != nil {
		log.Printf("列表回顶失败: %s", err)
	}
	s.driver.Sleep(s.pacing.ScrollSettle)

	result := &entity.HarvestResult{JobID: params.JobID}
	seen := make(map[string]struct{})
	noProgress := 0
	for result.TotalProcessed < params.MaxItems && noProgress < s.budget.NoProgressLimit {
		if ctx.Err() != nil {
			log.Printf("采集被取消, job_id: %s, 已处理: %d", params.JobID, result.TotalProcessed)
			break
		}

		progressed := false
		for _, item := range s.discoverer.DiscoverVisible() {
			if result.TotalProcessed >= params.MaxItems {
				break
			}
			if _, done := seen[item.Key]; done {
				continue
			}
			seen[item.Key] = struct{}{}

			a := s.extractor.Extract(item)
			result.Append(a)
			progressed = true
			if result.TotalProcessed <= 5 || result.TotalProcessed%10 == 0 {
				log.Printf("已处理 %d/%d: %s", result.TotalProcessed, params.MaxItems, a.Name)
			}
			if params.PerItemDelay > 0 {
				s.driver.Sleep(params.PerItemDelay)
			}
		}
		if progressed {
			noProgress = 0
		} else {
			noProgress++
		}
		if result.TotalProcessed >= params.MaxItems {
			break
		}

		// 固定步长推进视口,让虚拟列表渲染下一批
		if _, err := s.driver.ScrollContainer(s.profile.ListContainer, s.budget.ScrollIncrement); err != nil {
			log.Printf("列表滚动失败: %s", err)
		}
		s.driver.Sleep(s.pacing.ScrollSettle)
	}

	log.Printf("采集结束, job_id: %s, 共 %d 条, 电话 %d, 邮箱 %d",
		params.JobID, result.TotalProcessed, result.PhonesFound, result.EmailsFound)
	return result, nil
}

// HarvestAndIndex 采集后向量化并批量写入Elasticsearch
// 向量化失败只记日志,文档照常入库(缺向量的文档检索不到但不丢数据)
func (s *service[A, D]) HarvestAndIndex(ctx context.Context, params *param.Harvest) (*entity.HarvestResult, error) {
	result, err := s.Harvest(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(result.Applicants) == 0 {
		return result, nil
	}

	index := s.typedEsClient.GetIndex()
	docs := make([]D, 0, len(result.Applicants))
	for _, a := range result.Applicants {
		docs = append(docs, A(a).ToDocument(params.JobID, index))
	}
	s.embeddingDocs(docs)
	s.indexDocs(docs)
	return result, nil
}

func (s *service[A, D]) embeddingDocs(docs []D) {
	batchSize := s.embedder.BatchSize()
	if batchSize <= 0 {
		// 非法批大小退化为整批提交,避免分批循环原地踏步
		batchSize = len(docs)
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	embeddingStrings := make([]string, 0, len(docs))
	for _, doc := range docs {
		embeddingStrings = append(embeddingStrings, doc.GetEmbeddingString())
	}
	for i := 0; i < len(embeddingStrings); i += batchSize {
		end := min(i+batchSize, len(embeddingStrings))
		vectors, err := s.embedder.Embed(reqCtx, embeddingStrings[i:end])
		if err != nil {
			log.Printf("Embed error: %v", err)
			continue
		}
		for j := range vectors {
			docs[i+j].SetEmbedding(vectors[j])
		}
	}
}

func (s *service[A, D]) indexDocs(docs []D) {
	reqCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := s.typedEsClient.BulkIndexDocsWithID(reqCtx, docs); err != nil {
		log.Printf("Bulk index error: %v", err)
	}
}

// SendMessage 给指定候选人发一条站内信
// 先在列表里按身份键找人(必要时滚动),再走 消息→输入→发送 三步
func (s *service[A, D]) SendMessage(ctx context.Context, params *param.Message) error {
	if !params.IsValid() {
		return fmt.Errorf("站内信入参不合法: %+v", params)
	}

	url := fmt.Sprintf(s.profile.ListURL, params.JobID)
	log.Printf("发送站内信, job_id: %s, applicant: %s", params.JobID, params.ApplicantName)
	if err := s.driver.InitAndNavigate(url); err != nil {
		return fmt.Errorf("导航失败: %w", err)
	}
	s.driver.Sleep(s.pacing.LandingSettle)

	current, err := s.driver.CurrentURL()
	if err != nil {
		return fmt.Errorf("读取当前URL失败: %w", err)
	}
	if !s.landedOK(current) {
		return newHarvestError(KindAccessDenied,
			"导航落点不在目标列表页, 可能无访问权限或会话已过期",
			map[string]string{"job_id": params.JobID, "current_url": current})
	}

	item, found := s.findApplicant(ctx, params.ApplicantName)
	if !found {
		return newHarvestError(KindMessageFail,
			fmt.Sprintf("列表中没有找到候选人 %s", params.ApplicantName),
			map[string]string{"job_id": params.JobID, "applicant_name": params.ApplicantName})
	}

	if err := s.driver.ScrollIntoViewAndClick(item.Handle); err != nil {
		return newHarvestError(KindMessageFail, "打开候选人详情失败",
			map[string]string{"applicant_name": params.ApplicantName})
	}
	s.driver.Sleep(s.pacing.PanelSettle)

	control := s.extractor.firstUsable(s.profile.MessageChain)
	if control == nil {
		return newHarvestError(KindMessageFail, "没有找到消息入口",
			map[string]string{"applicant_name": params.ApplicantName})
	}
	if err := s.driver.ScrollIntoViewAndClick(control); err != nil {
		return newHarvestError(KindMessageFail, "打开消息窗口失败",
			map[string]string{"applicant_name": params.ApplicantName})
	}
	s.driver.Sleep(s.pacing.PanelSettle)

	textbox := s.extractor.firstUsable(s.profile.TextboxChain)
	if textbox == nil {
		return newHarvestError(KindMessageFail, "没有找到消息输入框",
			map[string]string{"applicant_name": params.ApplicantName})
	}
	if err := s.driver.TypeText(textbox, params.Text); err != nil {
		return newHarvestError(KindMessageFail, "输入消息失败",
			map[string]string{"applicant_name": params.ApplicantName})
	}

	send := s.extractor.firstUsable(s.profile.SendChain)
	if send == nil {
		return newHarvestError(KindMessageFail, "没有找到发送按钮",
			map[string]string{"applicant_name": params.ApplicantName})
	}
	if err := s.driver.Click(send); err != nil {
		return newHarvestError(KindMessageFail, "点击发送失败",
			map[string]string{"applicant_name": params.ApplicantName})
	}
	log.Printf("站内信已发送, applicant: %s", params.ApplicantName)
	return nil
}

// findApplicant 在可见窗口内按身份键找人,找不到就滚动换窗口再找
func (s *service[A, D]) findApplicant(ctx context.Context, name string) (Discovered, bool) {
	noProgress := 0
	seen := make(map[string]struct{})
	for noProgress < s.budget.NoProgressLimit {
		if ctx.Err() != nil {
			break
		}
		progressed := false
		for _, item := range s.discoverer.DiscoverVisible() {
			if item.Key == name {
				return item, true
			}
			if _, dup := seen[item.Key]; !dup {
				seen[item.Key] = struct{}{}
				progressed = true
			}
		}
		if progressed {
			noProgress = 0
		} else {
			noProgress++
		}
		if _, err := s.driver.ScrollContainer(s.profile.ListContainer, s.budget.ScrollIncrement); err != nil {
			break
		}
		s.driver.Sleep(s.pacing.ScrollSettle)
	}
	return Discovered{}, false
}

// buildListURL 评级过滤原样拼进URL,引擎不理解过滤值的业务含义
// ALL与空一样表示不过滤
func (s *service[A, D]) buildListURL(params *param.Harvest) string {
	if params.RatingFilter != "" && params.RatingFilter != param.RatingAll {
		return fmt.Sprintf(s.profile.ListURLWithFilter, params.JobID, params.RatingFilter)
	}
	return fmt.Sprintf(s.profile.ListURL, params.JobID)
}

func (s *service[A, D]) landedOK(currentURL string) bool {
	for _, marker := range s.profile.LandingMarkers {
		if strings.Contains(currentURL, marker) {
			return true
		}
	}
	return false
}
