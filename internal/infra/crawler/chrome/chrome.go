package chrome

import (
	"time"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/types"
)

// PageDriver 浏览器页面驱动,封装采集引擎需要的全部页面能力
// 引擎只依赖这个接口,不依赖具体实现(chromedp/rod),
// 一次采集独占一个驱动实例,所有操作严格串行
type PageDriver interface {
	InitAndNavigate(url string) error
	CurrentURL() (string, error)

	// FindAll/FindFirst 查询当前渲染的元素,虚拟列表下结果只是一个窗口,
	// 每轮处理前都要重新查询
	FindAll(loc types.Locator) ([]types.Handle, error)
	FindFirst(loc types.Locator) (types.Handle, error)

	Attribute(h types.Handle, name string) (string, bool, error)
	Text(h types.Handle) (string, error)
	InnerHTML(h types.Handle) (string, error)

	Click(h types.Handle) error
	// ScrollIntoViewAndClick 滚动到视口中央并点击,合并为一次操作,
	// 减小滚动和点击之间句柄失效的窗口
	ScrollIntoViewAndClick(h types.Handle) error
	TypeText(h types.Handle, text string) error
	PressEscape() error

	IsDisplayed(h types.Handle) (bool, error)
	IsEnabled(h types.Handle) (bool, error)

	// ScrollContainer 滚动可滚动容器,loc为nil时滚动窗口本身
	// 返回是否找到了可滚动的容器
	ScrollContainer(loc *types.Locator, delta int) (bool, error)
	ScrollContainerToTop(loc *types.Locator) error

	// WaitReady 等待至少一个匹配元素出现,超时不报错只返回false
	// ("等待条件,超时则继续"的节奏原语)
	WaitReady(loc types.Locator, timeout time.Duration) bool
	Sleep(d time.Duration)

	Close()
}
