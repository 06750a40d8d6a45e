package chrome

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/config"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/options"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/types"
)

type rodDriver struct {
	browser *rod.Browser
	page    *rod.Page
}

func InitRodDriver(cfg *config.Config) (PageDriver, error) {
	url := options.CreateLauncher(
		options.WithBin(cfg.Rod.Bin),
		options.WithUserDataDir(cfg.Rod.UserDataDir),
		options.WithHeadless(cfg.Rod.Headless),
		options.WithDisableBlinkFeatures(cfg.Rod.DisableBlinkFeatures),
		options.WithIncognito(cfg.Rod.Incognito),
		options.WithDisableDevShmUsage(cfg.Rod.DisableDevShmUsage),
		options.WithNoSandbox(cfg.Rod.NoSandbox),
		options.WithUserAgent(cfg.Rod.UserAgent),
		options.WithLeakless(cfg.Rod.Leakless),
	)
	urlStr, err := url.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %v", err)
	}

	browser := rod.New().ControlURL(urlStr)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("连接浏览器失败: %v", err)
	}
	return &rodDriver{browser: browser}, nil
}

func (rd *rodDriver) Close() {
	if rd.page != nil {
		_ = rd.page.Close()
	}
	_ = rd.browser.Close()
}

func (rd *rodDriver) InitAndNavigate(url string) error {
	if rd.page == nil {
		page, err := stealth.Page(rd.browser)
		if err != nil {
			return fmt.Errorf("创建页面失败: %w", err)
		}
		rd.page = page
	}
	if err := rd.page.Navigate(url); err != nil {
		return fmt.Errorf("导航失败: %w", err)
	}
	return rd.page.WaitLoad()
}

func (rd *rodDriver) CurrentURL() (string, error) {
	info, err := rd.page.Info()
	if err != nil {
		return "", fmt.Errorf("读取当前URL失败: %w", err)
	}
	return info.URL, nil
}

func (rd *rodDriver) FindAll(loc types.Locator) ([]types.Handle, error) {
	var els rod.Elements
	var err error
	if loc.By == types.ByXpath {
		els, err = rd.page.ElementsX(loc.Value)
	} else {
		els, err = rd.page.Elements(loc.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("查询元素失败 (%s): %w", loc.Value, err)
	}
	handles := make([]types.Handle, 0, len(els))
	for _, el := range els {
		handles = append(handles, el)
	}
	return handles, nil
}

func (rd *rodDriver) FindFirst(loc types.Locator) (types.Handle, error) {
	handles, err := rd.FindAll(loc)
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, nil
	}
	return handles[0], nil
}

func (rd *rodDriver) element(h types.Handle) (*rod.Element, error) {
	el, ok := h.(*rod.Element)
	if !ok || el == nil {
		return nil, fmt.Errorf("%w: 非rod句柄", types.ErrStale)
	}
	return el, nil
}

func (rd *rodDriver) Attribute(h types.Handle, name string) (string, bool, error) {
	el, err := rd.element(h)
	if err != nil {
		return "", false, err
	}
	val, err := el.Attribute(name)
	if err != nil {
		return "", false, rodStaleOr(err)
	}
	if val == nil {
		return "", false, nil
	}
	return *val, true, nil
}

func (rd *rodDriver) Text(h types.Handle) (string, error) {
	el, err := rd.element(h)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", rodStaleOr(err)
	}
	return text, nil
}

func (rd *rodDriver) InnerHTML(h types.Handle) (string, error) {
	el, err := rd.element(h)
	if err != nil {
		return "", err
	}
	obj, err := el.Eval(`() => this.innerHTML`)
	if err != nil {
		return "", rodStaleOr(err)
	}
	return obj.Value.Str(), nil
}

func (rd *rodDriver) Click(h types.Handle) error {
	el, err := rd.element(h)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return rodStaleOr(err)
	}
	return nil
}

func (rd *rodDriver) ScrollIntoViewAndClick(h types.Handle) error {
	el, err := rd.element(h)
	if err != nil {
		return err
	}
	// 一次Eval里完成滚动+点击,减小句柄失效窗口
	_, err = el.Eval(`() => {
		this.scrollIntoView({block: "center", behavior: "instant"});
		this.click();
	}`)
	if err != nil {
		return rodStaleOr(err)
	}
	return nil
}

func (rd *rodDriver) TypeText(h types.Handle, text string) error {
	el, err := rd.element(h)
	if err != nil {
		return err
	}
	if text == types.KeyEscape {
		return rd.PressEscape()
	}
	if err := el.Input(text); err != nil {
		return rodStaleOr(err)
	}
	return nil
}

func (rd *rodDriver) PressEscape() error {
	return rd.page.Keyboard.Press(input.Escape)
}

func (rd *rodDriver) IsDisplayed(h types.Handle) (bool, error) {
	el, err := rd.element(h)
	if err != nil {
		return false, err
	}
	visible, err := el.Visible()
	if err != nil {
		return false, rodStaleOr(err)
	}
	return visible, nil
}

func (rd *rodDriver) IsEnabled(h types.Handle) (bool, error) {
	el, err := rd.element(h)
	if err != nil {
		return false, err
	}
	obj, err := el.Eval(`() => !this.disabled`)
	if err != nil {
		return false, rodStaleOr(err)
	}
	return obj.Value.Bool(), nil
}

func (rd *rodDriver) ScrollContainer(loc *types.Locator, delta int) (bool, error) {
	if loc == nil {
		_, err := rd.page.Eval(fmt.Sprintf(`() => window.scrollBy(0, %d)`, delta))
		return err == nil, err
	}
	h, err := rd.FindFirst(*loc)
	if err != nil {
		return false, err
	}
	if h == nil {
		return false, nil
	}
	el := h.(*rod.Element)
	obj, err := el.Eval(fmt.Sprintf(`() => {
		if (this.scrollHeight <= this.clientHeight) { return false; }
		this.scrollTop += %d;
		return true;
	}`, delta))
	if err != nil {
		return false, rodStaleOr(err)
	}
	return obj.Value.Bool(), nil
}

func (rd *rodDriver) ScrollContainerToTop(loc *types.Locator) error {
	if loc == nil {
		_, err := rd.page.Eval(`() => window.scrollTo(0, 0)`)
		return err
	}
	h, err := rd.FindFirst(*loc)
	if err != nil {
		return err
	}
	if h == nil {
		return nil
	}
	el := h.(*rod.Element)
	if _, err := el.Eval(`() => { this.scrollTop = 0; }`); err != nil {
		return rodStaleOr(err)
	}
	return nil
}

func (rd *rodDriver) WaitReady(loc types.Locator, timeout time.Duration) bool {
	page := rd.page.Timeout(timeout)
	var err error
	if loc.By == types.ByXpath {
		_, err = page.ElementX(loc.Value)
	} else {
		_, err = page.Element(loc.Value)
	}
	return err == nil
}

func (rd *rodDriver) Sleep(d time.Duration) {
	time.Sleep(d)
}

// rodStaleOr rod在元素脱离DOM时返回对象不存在类错误,归一为ErrStale
func rodStaleOr(err error) error {
	if err == nil {
		return nil
	}
	var objErr *rod.ObjectNotFoundError
	if errors.As(err, &objErr) {
		return fmt.Errorf("%w: %v", types.ErrStale, err)
	}
	var invisibleErr *rod.InvisibleShapeError
	if errors.As(err, &invisibleErr) {
		return fmt.Errorf("%w: %v", types.ErrStale, err)
	}
	return err
}
