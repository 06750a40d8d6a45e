package types

import "errors"

// By 定位方式,对应WebDriver的By概念
type By string

const (
	ByCss   By = "css"
	ByXpath By = "xpath"
)

// Locator 定位器,一个逻辑字段可以配置多个Locator组成回退链,
// 链中第一个命中非空结果的Locator生效,后续不再尝试
type Locator struct {
	By    By     `json:"by"`
	Value string `json:"value"`
}

func Css(value string) Locator   { return Locator{By: ByCss, Value: value} }
func Xpath(value string) Locator { return Locator{By: ByXpath, Value: value} }

// Handle 页面元素句柄,由具体驱动定义(chromedp为*cdp.Node,rod为*rod.Element)
// 虚拟列表会把离开视口的节点从DOM中驱逐,句柄随时可能失效,
// 所以句柄绝不能跨轮次缓存,每轮都要重新查询
type Handle any

// ErrStale 句柄在查询和使用之间失效(DOM驱逐),调用方视为"未找到"而非中止
var ErrStale = errors.New("元素句柄已失效")

// KeyEscape 取消按键,关闭弹层的兜底输入
const KeyEscape = "\u001b"
