package harvest

import (
	"context"
	"log"
	"strings"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/chrome"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/types"
)

// Loader 批量加载阶段:在抽取开始前反复触发加载,
// 把尽量多的列表项装进页面,失败只消耗预算不中止运行
type Loader struct {
	driver  chrome.PageDriver
	profile *Profile
	pacing  Pacing
	budget  Budget
}

func NewLoader(driver chrome.PageDriver, profile *Profile, pacing Pacing, budget Budget) *Loader {
	return &Loader{driver: driver, profile: profile, pacing: pacing, budget: budget}
}

// CountVisible 统计当前DOM中渲染出来的列表项数量
// 虚拟列表下这只是窗口大小的近似,但加载阶段只关心数量是否还在增长
func (l *Loader) CountVisible() int {
	handles, err := l.driver.FindAll(l.profile.ItemMarker)
	if err != nil {
		return 0
	}
	return len(handles)
}

// Expand 反复触发加载直到数量达到target、总尝试耗尽
// 或连续无增长达到上限,返回最终已加载的数量
func (l *Loader) Expand(ctx context.Context, target int) int {
	count := l.CountVisible()
	failures := 0
	for attempt := 1; attempt <= l.budget.MaxLoadAttempts; attempt++ {
		if ctx.Err() != nil {
			log.Printf("加载阶段被取消, 已加载: %d", count)
			return count
		}
		if count >= target {
			break
		}
		if failures >= l.budget.MaxLoadFailures {
			log.Printf("连续 %d 次加载无增长, 停止加载, 已加载: %d", failures, count)
			break
		}

		if l.clickLoadMore() {
			l.driver.Sleep(l.pacing.LoadMoreSettle)
		} else {
			// 没有可用的加载控件,用滚动逼出增长
			found, err := l.driver.ScrollContainer(l.profile.ListContainer, l.budget.ScrollIncrement)
			if err != nil || !found {
				l.driver.Sleep(l.pacing.FailedScrollWait)
			} else {
				l.driver.Sleep(l.pacing.ScrollSettle)
			}
		}

		newCount := l.CountVisible()
		if newCount > count {
			count = newCount
			failures = 0
		} else {
			failures++
		}
		if attempt%10 == 0 {
			log.Printf("加载中, 第 %d 次尝试, 已加载: %d/%d", attempt, count, target)
		}
	}
	return count
}

// clickLoadMore 先全扫页面按钮按内部文本匹配,再走选择器回退链
// 按钮文本比选择器结构稳定,所以文本扫描优先
func (l *Loader) clickLoadMore() bool {
	buttons, err := l.driver.FindAll(l.profile.ButtonsLocator)
	if err == nil {
		for _, b := range buttons {
			html, err := l.driver.InnerHTML(b)
			if err != nil || !strings.Contains(html, l.profile.LoadMoreMarker) {
				continue
			}
			if !l.usable(b) {
				continue
			}
			if err := l.driver.ScrollIntoViewAndClick(b); err == nil {
				return true
			}
		}
	}
	for _, loc := range l.profile.LoadMoreChain {
		h, err := l.driver.FindFirst(loc)
		if err != nil || h == nil {
			continue
		}
		if !l.usable(h) {
			continue
		}
		if err := l.driver.ScrollIntoViewAndClick(h); err == nil {
			return true
		}
	}
	return false
}

func (l *Loader) usable(h types.Handle) bool {
	shown, err := l.driver.IsDisplayed(h)
	if err != nil || !shown {
		return false
	}
	enabled, err := l.driver.IsEnabled(h)
	return err == nil && enabled
}
