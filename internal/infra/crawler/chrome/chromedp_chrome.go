package chrome

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/config"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/types"
)

type chromedpDriver struct {
	allocCtx      context.Context
	allocCtxFuc   context.CancelFunc
	pageCtx       context.Context
	pageCtxFuc    context.CancelFunc
	timeoutCtxFuc context.CancelFunc
}

func InitChromedpDriver(ctx context.Context, cfg *config.Config) PageDriver {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Chromedp.Headless),
		chromedp.Flag("disable-blink-features", cfg.Chromedp.DisableBlinkFeatures),
		chromedp.Flag("incognito", cfg.Chromedp.Incognito),
		chromedp.Flag("disable-dev-shm-usage", cfg.Chromedp.DisableDevShmUsage),
		chromedp.Flag("no-sandbox", cfg.Chromedp.NoSandbox),
		chromedp.UserDataDir(cfg.Chromedp.UserDataDir),
		chromedp.UserAgent(cfg.Chromedp.UserAgent),
	)
	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, time.Duration(cfg.Chromedp.LifeTime)*time.Second)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, opts...)
	pageCtx, cancelPage := chromedp.NewContext(allocCtx)

	return &chromedpDriver{
		allocCtx:      allocCtx,
		allocCtxFuc:   cancelAlloc,
		pageCtx:       pageCtx,
		pageCtxFuc:    cancelPage,
		timeoutCtxFuc: cancelTimeout,
	}
}

func (cd *chromedpDriver) Close() {
	cd.pageCtxFuc()
	cd.allocCtxFuc()
	cd.timeoutCtxFuc()
}

func (cd *chromedpDriver) InitAndNavigate(url string) error {
	return chromedp.Run(cd.pageCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (cd *chromedpDriver) CurrentURL() (string, error) {
	var url string
	if err := chromedp.Run(cd.pageCtx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("读取当前URL失败: %w", err)
	}
	return url, nil
}

// queryOption 根据定位方式选择查询选项,xpath用BySearch,css用ByQueryAll
func queryOption(loc types.Locator) chromedp.QueryOption {
	if loc.By == types.ByXpath {
		return chromedp.BySearch
	}
	return chromedp.ByQueryAll
}

func (cd *chromedpDriver) FindAll(loc types.Locator) ([]types.Handle, error) {
	var nodes []*cdp.Node
	// AtLeast(0): 元素不存在不是错误,立即返回空集,由调用方决定等待策略
	err := chromedp.Run(cd.pageCtx,
		chromedp.Nodes(loc.Value, &nodes, queryOption(loc), chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("查询元素失败 (%s): %w", loc.Value, err)
	}
	handles := make([]types.Handle, 0, len(nodes))
	for _, n := range nodes {
		handles = append(handles, n)
	}
	return handles, nil
}

func (cd *chromedpDriver) FindFirst(loc types.Locator) (types.Handle, error) {
	handles, err := cd.FindAll(loc)
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, nil
	}
	return handles[0], nil
}

func (cd *chromedpDriver) node(h types.Handle) (*cdp.Node, error) {
	n, ok := h.(*cdp.Node)
	if !ok || n == nil {
		return nil, fmt.Errorf("%w: 非chromedp句柄", types.ErrStale)
	}
	return n, nil
}

func (cd *chromedpDriver) Attribute(h types.Handle, name string) (string, bool, error) {
	n, err := cd.node(h)
	if err != nil {
		return "", false, err
	}
	var value string
	var ok bool
	err = chromedp.Run(cd.pageCtx,
		chromedp.AttributeValue([]cdp.NodeID{n.NodeID}, name, &value, &ok, chromedp.ByNodeID),
	)
	if err != nil {
		return "", false, staleOr(err)
	}
	return value, ok, nil
}

func (cd *chromedpDriver) Text(h types.Handle) (string, error) {
	n, err := cd.node(h)
	if err != nil {
		return "", err
	}
	var text string
	err = chromedp.Run(cd.pageCtx,
		chromedp.Text([]cdp.NodeID{n.NodeID}, &text, chromedp.ByNodeID),
	)
	if err != nil {
		return "", staleOr(err)
	}
	return text, nil
}

func (cd *chromedpDriver) InnerHTML(h types.Handle) (string, error) {
	raw, err := cd.callOnNode(h, `function() { return this.innerHTML; }`)
	if err != nil {
		return "", err
	}
	var html string
	if err := json.Unmarshal(raw, &html); err != nil {
		return "", fmt.Errorf("解析innerHTML失败: %w", err)
	}
	return html, nil
}

func (cd *chromedpDriver) Click(h types.Handle) error {
	n, err := cd.node(h)
	if err != nil {
		return err
	}
	if err := chromedp.Run(cd.pageCtx, chromedp.MouseClickNode(n)); err != nil {
		return staleOr(err)
	}
	return nil
}

func (cd *chromedpDriver) ScrollIntoViewAndClick(h types.Handle) error {
	n, err := cd.node(h)
	if err != nil {
		return err
	}
	// 滚动与点击放进同一次Run,减小中间句柄失效的窗口
	err = chromedp.Run(cd.pageCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return dom.ScrollIntoViewIfNeeded().WithNodeID(n.NodeID).Do(ctx)
		}),
		chromedp.MouseClickNode(n),
	)
	if err != nil {
		return staleOr(err)
	}
	return nil
}

func (cd *chromedpDriver) TypeText(h types.Handle, text string) error {
	n, err := cd.node(h)
	if err != nil {
		return err
	}
	err = chromedp.Run(cd.pageCtx,
		chromedp.SendKeys([]cdp.NodeID{n.NodeID}, text, chromedp.ByNodeID),
	)
	if err != nil {
		return staleOr(err)
	}
	return nil
}

func (cd *chromedpDriver) PressEscape() error {
	return chromedp.Run(cd.pageCtx, chromedp.KeyEvent(types.KeyEscape))
}

func (cd *chromedpDriver) IsDisplayed(h types.Handle) (bool, error) {
	raw, err := cd.callOnNode(h, `function() {
		return !!(this.offsetWidth || this.offsetHeight || this.getClientRects().length);
	}`)
	if err != nil {
		return false, err
	}
	var visible bool
	if err := json.Unmarshal(raw, &visible); err != nil {
		return false, err
	}
	return visible, nil
}

func (cd *chromedpDriver) IsEnabled(h types.Handle) (bool, error) {
	raw, err := cd.callOnNode(h, `function() { return !this.disabled; }`)
	if err != nil {
		return false, err
	}
	var enabled bool
	if err := json.Unmarshal(raw, &enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

// callOnNode 把节点解析为JS对象后在其上调用函数,返回JSON编码的函数返回值
// 这是IsDisplayed/IsEnabled/InnerHTML的共用通道
func (cd *chromedpDriver) callOnNode(h types.Handle, declaration string) (json.RawMessage, error) {
	n, err := cd.node(h)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	err = chromedp.Run(cd.pageCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(n.NodeID).Do(ctx)
		if err != nil {
			return err
		}
		res, exp, err := runtime.CallFunctionOn(declaration).
			WithObjectID(obj.ObjectID).
			WithReturnByValue(true).
			Do(ctx)
		if err != nil {
			return err
		}
		if exp != nil {
			return fmt.Errorf("页面脚本执行异常: %s", exp.Text)
		}
		raw = json.RawMessage(res.Value)
		return nil
	}))
	if err != nil {
		return nil, staleOr(err)
	}
	return raw, nil
}

const scrollContainerByJS = `(function(value, byXpath, delta) {
	var el = null;
	if (byXpath) {
		el = document.evaluate(value, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	} else {
		el = document.querySelector(value);
	}
	if (!el || el.scrollHeight <= el.clientHeight) {
		return false;
	}
	if (delta === null) {
		el.scrollTop = 0;
	} else {
		el.scrollTop += delta;
	}
	return true;
})(%q, %t, %s)`

func (cd *chromedpDriver) ScrollContainer(loc *types.Locator, delta int) (bool, error) {
	if loc == nil {
		err := chromedp.Run(cd.pageCtx,
			chromedp.Evaluate(fmt.Sprintf(`window.scrollBy(0, %d)`, delta), nil),
		)
		return err == nil, err
	}
	js := fmt.Sprintf(scrollContainerByJS, loc.Value, loc.By == types.ByXpath, fmt.Sprintf("%d", delta))
	var scrolled bool
	if err := chromedp.Run(cd.pageCtx, chromedp.Evaluate(js, &scrolled)); err != nil {
		return false, fmt.Errorf("滚动容器失败: %w", err)
	}
	return scrolled, nil
}

func (cd *chromedpDriver) ScrollContainerToTop(loc *types.Locator) error {
	if loc == nil {
		return chromedp.Run(cd.pageCtx, chromedp.Evaluate(`window.scrollTo(0, 0)`, nil))
	}
	js := fmt.Sprintf(scrollContainerByJS, loc.Value, loc.By == types.ByXpath, "null")
	var scrolled bool
	if err := chromedp.Run(cd.pageCtx, chromedp.Evaluate(js, &scrolled)); err != nil {
		return fmt.Errorf("容器回到顶部失败: %w", err)
	}
	return nil
}

func (cd *chromedpDriver) WaitReady(loc types.Locator, timeout time.Duration) bool {
	waitCtx, cancel := context.WithTimeout(cd.pageCtx, timeout)
	defer cancel()
	opt := chromedp.ByQuery
	if loc.By == types.ByXpath {
		opt = chromedp.BySearch
	}
	err := chromedp.Run(waitCtx, chromedp.WaitReady(loc.Value, opt))
	return err == nil
}

func (cd *chromedpDriver) Sleep(d time.Duration) {
	time.Sleep(d)
}

// staleOr 把"节点已不存在"类错误归一为ErrStale,其余原样返回
func staleOr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "could not find node") ||
		strings.Contains(msg, "No node with given id") ||
		strings.Contains(msg, "node not found") {
		return fmt.Errorf("%w: %v", types.ErrStale, err)
	}
	return err
}
