package harvest

import (
	"log"
	"strings"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/entity"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/chrome"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/types"
)

// Extractor 单条抽取:打开详情面板,按回退链取字段,
// 任何字段取不到都只留空,从不让一条失败拖垮整次运行
type Extractor struct {
	driver  chrome.PageDriver
	profile *Profile
	pacing  Pacing
}

func NewExtractor(driver chrome.PageDriver, profile *Profile, pacing Pacing) *Extractor {
	return &Extractor{driver: driver, profile: profile, pacing: pacing}
}

// Extract 抽取一条列表项,总会返回一个结果
// 连详情面板都打不开时只带身份键返回,部分结果优于没有结果
func (e *Extractor) Extract(item Discovered) *entity.Applicant {
	a := &entity.Applicant{Name: item.Key}

	if err := e.driver.ScrollIntoViewAndClick(item.Handle); err != nil {
		log.Printf("打开详情面板失败, key: %s, error: %s", item.Key, err)
		return a
	}
	e.driver.Sleep(e.pacing.PanelSettle)

	// 面板上的姓名比列表项标签干净,取到了就覆盖
	if name := e.firstText(e.profile.NameChain); name != "" {
		a.Name = name
	}
	a.Headline = e.firstText(e.profile.HeadlineChain)
	a.Location = e.firstText(e.profile.LocationChain)
	a.ProfileURL = e.profileURL()

	e.revealContacts(a)
	e.dismiss()
	return a
}

// revealContacts 二段抽取:先点开联系方式弹层再读字段
// 展开控件不存在(未解锁联系方式)时静默跳过
func (e *Extractor) revealContacts(a *entity.Applicant) {
	control := e.firstUsable(e.profile.RevealChain)
	if control == nil {
		return
	}
	if err := e.driver.ScrollIntoViewAndClick(control); err != nil {
		log.Printf("展开联系方式失败, name: %s, error: %s", a.Name, err)
		return
	}
	e.driver.Sleep(e.pacing.RevealSettle)
	a.Phone = e.phone()
	a.Email = e.email()
}

func (e *Extractor) phone() string {
	for _, loc := range e.profile.PhoneChain {
		h, err := e.driver.FindFirst(loc)
		if err != nil || h == nil {
			continue
		}
		if href, ok, err := e.driver.Attribute(h, "href"); err == nil && ok && strings.HasPrefix(href, "tel:") {
			return strings.TrimPrefix(href, "tel:")
		}
		text, err := e.driver.Text(h)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}

func (e *Extractor) email() string {
	for _, loc := range e.profile.EmailChain {
		h, err := e.driver.FindFirst(loc)
		if err != nil || h == nil {
			continue
		}
		if href, ok, err := e.driver.Attribute(h, "href"); err == nil && ok && strings.HasPrefix(href, "mailto:") {
			return strings.TrimPrefix(href, "mailto:")
		}
		text, err := e.driver.Text(h)
		if err != nil {
			continue
		}
		// 纯文本节点必须带@才认作邮箱,避免把提示文案当成地址
		if text = strings.TrimSpace(text); strings.Contains(text, "@") {
			return text
		}
	}
	return ""
}

func (e *Extractor) profileURL() string {
	for _, loc := range e.profile.ProfileURLChain {
		h, err := e.driver.FindFirst(loc)
		if err != nil || h == nil {
			continue
		}
		href, ok, err := e.driver.Attribute(h, "href")
		if err != nil || !ok {
			continue
		}
		if strings.Contains(href, e.profile.ProfileURLMarker) {
			return href
		}
	}
	return ""
}

// dismiss 关闭联系方式弹层,找不到关闭控件就对页面发取消键兜底
// 弹层残留会挡住下一条的点击,所以这一步必须有结果
func (e *Extractor) dismiss() {
	for _, loc := range e.profile.DismissChain {
		h, err := e.driver.FindFirst(loc)
		if err != nil || h == nil {
			continue
		}
		if err := e.driver.Click(h); err == nil {
			e.driver.Sleep(e.pacing.DismissSettle)
			return
		}
	}
	// 取消键优先发给body元素,拿不到body再降级为全局按键
	if body, err := e.driver.FindFirst(e.profile.BodyLocator); err == nil && body != nil {
		if err := e.driver.TypeText(body, types.KeyEscape); err == nil {
			e.driver.Sleep(e.pacing.DismissSettle)
			return
		}
	}
	if err := e.driver.PressEscape(); err != nil {
		log.Printf("发送取消键失败: %s", err)
	}
	e.driver.Sleep(e.pacing.DismissSettle)
}

// firstText 按回退链取第一个非空文本,链中命中即止
// 句柄失效(ErrStale)按未命中处理,换下一个定位器
func (e *Extractor) firstText(chain []types.Locator) string {
	for _, loc := range chain {
		h, err := e.driver.FindFirst(loc)
		if err != nil || h == nil {
			continue
		}
		text, err := e.driver.Text(h)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}

func (e *Extractor) firstUsable(chain []types.Locator) types.Handle {
	for _, loc := range chain {
		h, err := e.driver.FindFirst(loc)
		if err != nil || h == nil {
			continue
		}
		shown, err := e.driver.IsDisplayed(h)
		if err != nil || !shown {
			continue
		}
		enabled, err := e.driver.IsEnabled(h)
		if err != nil || !enabled {
			continue
		}
		return h
	}
	return nil
}
