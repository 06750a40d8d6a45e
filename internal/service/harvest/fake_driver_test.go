package harvest

import (
	"time"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/types"
)

// fakeElement 测试用页面元素,onClick模拟点击的页面副作用
type fakeElement struct {
	text     string
	html     string
	attrs    map[string]string
	hidden   bool
	disabled bool
	stale    bool
	onClick  func()
}

// fakeItem 测试用列表项:label是身份标签,panel是点开后详情面板里的元素
type fakeItem struct {
	label string
	panel map[string]*fakeElement
}

// fakeDriver 内存中的虚拟列表页面
// loadedCount是已装进DOM的条数,windowStart/windowSize模拟虚拟化窗口,
// 窗口外的项查询不到,滚动容器推进窗口(windowStep)并可触发增长(growPerScroll)
type fakeDriver struct {
	url        string
	redirectTo string
	navCalls   []string

	items       []*fakeItem
	loadedCount int
	windowStart int
	windowSize  int
	windowStep  int

	hasContainer  bool
	scrolls       int
	topScrolls    int
	growPerScroll int
	growEvery     int

	buttons []*fakeElement
	extra   map[string]*fakeElement

	open     *fakeItem
	revealed bool
	msgOpen  bool

	typed      []string
	sent       int
	escPresses int

	findAllCalls map[string]int
	lookups      []string
}

func newFakeDriver(names ...string) *fakeDriver {
	d := &fakeDriver{
		windowSize:   100,
		hasContainer: true,
		extra:        map[string]*fakeElement{},
		findAllCalls: map[string]int{},
	}
	for _, n := range names {
		d.addItem(n)
	}
	d.loadedCount = len(d.items)
	return d
}

func (d *fakeDriver) addItem(name string) *fakeItem {
	it := &fakeItem{label: name + ", Verified profile"}
	it.panel = map[string]*fakeElement{
		"#name-a":       {text: name},
		"#headline":     {text: "资深后端工程师"},
		"#location":     {text: "Berlin, Germany"},
		"#profile-link": {attrs: map[string]string{"href": "https://example.com/in/" + name}},
		"#contact":      {onClick: func() { d.revealed = true }},
		"#phone":        {attrs: map[string]string{"href": "tel:+15550100"}},
		"#email":        {attrs: map[string]string{"href": "mailto:" + name + "@example.com"}},
		"#message":      {onClick: func() { d.msgOpen = true }},
		"#textbox":      {},
		"#send":         {onClick: func() { d.sent++ }},
	}
	d.items = append(d.items, it)
	return it
}

// enableLoadMore 加一个"加载更多"按钮,每次点击装入batch条
func (d *fakeDriver) enableLoadMore(batch int) *fakeElement {
	btn := &fakeElement{html: `<span>Load more applicants</span>`}
	btn.onClick = func() {
		d.loadedCount = min(d.loadedCount+batch, len(d.items))
	}
	d.buttons = append(d.buttons, btn)
	return btn
}

func (d *fakeDriver) InitAndNavigate(url string) error {
	d.navCalls = append(d.navCalls, url)
	if d.redirectTo != "" {
		d.url = d.redirectTo
	} else {
		d.url = url
	}
	return nil
}

func (d *fakeDriver) CurrentURL() (string, error) {
	return d.url, nil
}

func (d *fakeDriver) FindAll(loc types.Locator) ([]types.Handle, error) {
	d.findAllCalls[loc.Value]++
	return d.lookup(loc), nil
}

func (d *fakeDriver) FindFirst(loc types.Locator) (types.Handle, error) {
	handles := d.lookup(loc)
	if len(handles) == 0 {
		return nil, nil
	}
	return handles[0], nil
}

func (d *fakeDriver) lookup(loc types.Locator) []types.Handle {
	d.lookups = append(d.lookups, loc.Value)
	switch loc.Value {
	case ".item":
		end := min(d.windowStart+d.windowSize, d.loadedCount)
		if d.windowStart >= end {
			return nil
		}
		out := make([]types.Handle, 0, end-d.windowStart)
		for i := d.windowStart; i < end; i++ {
			it := d.items[i]
			out = append(out, &fakeElement{
				attrs: map[string]string{"aria-label": it.label},
				onClick: func() {
					d.open = it
					d.revealed = false
					d.msgOpen = false
				},
			})
		}
		return out
	case "button":
		out := make([]types.Handle, 0, len(d.buttons))
		for _, b := range d.buttons {
			out = append(out, b)
		}
		return out
	default:
		if el, ok := d.extra[loc.Value]; ok {
			return []types.Handle{el}
		}
		if d.open == nil {
			return nil
		}
		el, ok := d.open.panel[loc.Value]
		if !ok {
			return nil
		}
		if (loc.Value == "#phone" || loc.Value == "#email") && !d.revealed {
			return nil
		}
		if (loc.Value == "#textbox" || loc.Value == "#send") && !d.msgOpen {
			return nil
		}
		return []types.Handle{el}
	}
}

func (d *fakeDriver) Attribute(h types.Handle, name string) (string, bool, error) {
	el := h.(*fakeElement)
	if el.stale {
		return "", false, types.ErrStale
	}
	v, ok := el.attrs[name]
	return v, ok, nil
}

func (d *fakeDriver) Text(h types.Handle) (string, error) {
	el := h.(*fakeElement)
	if el.stale {
		return "", types.ErrStale
	}
	return el.text, nil
}

func (d *fakeDriver) InnerHTML(h types.Handle) (string, error) {
	el := h.(*fakeElement)
	if el.stale {
		return "", types.ErrStale
	}
	return el.html, nil
}

func (d *fakeDriver) Click(h types.Handle) error {
	return d.ScrollIntoViewAndClick(h)
}

func (d *fakeDriver) ScrollIntoViewAndClick(h types.Handle) error {
	el := h.(*fakeElement)
	if el.stale {
		return types.ErrStale
	}
	if el.onClick != nil {
		el.onClick()
	}
	return nil
}

func (d *fakeDriver) TypeText(h types.Handle, text string) error {
	el := h.(*fakeElement)
	if el.stale {
		return types.ErrStale
	}
	d.typed = append(d.typed, text)
	return nil
}

func (d *fakeDriver) PressEscape() error {
	d.escPresses++
	return nil
}

func (d *fakeDriver) IsDisplayed(h types.Handle) (bool, error) {
	el := h.(*fakeElement)
	if el.stale {
		return false, types.ErrStale
	}
	return !el.hidden, nil
}

func (d *fakeDriver) IsEnabled(h types.Handle) (bool, error) {
	el := h.(*fakeElement)
	if el.stale {
		return false, types.ErrStale
	}
	return !el.disabled, nil
}

func (d *fakeDriver) ScrollContainer(loc *types.Locator, delta int) (bool, error) {
	d.scrolls++
	if d.growPerScroll > 0 && (d.growEvery <= 1 || d.scrolls%d.growEvery == 0) {
		d.loadedCount = min(d.loadedCount+d.growPerScroll, len(d.items))
	}
	if d.windowStep > 0 {
		d.windowStart += d.windowStep
	}
	return d.hasContainer, nil
}

func (d *fakeDriver) ScrollContainerToTop(loc *types.Locator) error {
	d.topScrolls++
	d.windowStart = 0
	return nil
}

func (d *fakeDriver) WaitReady(loc types.Locator, timeout time.Duration) bool {
	return len(d.lookup(loc)) > 0
}

func (d *fakeDriver) Sleep(time.Duration) {}

func (d *fakeDriver) Close() {}

func testProfile() *Profile {
	container := types.Css("#list")
	return &Profile{
		ListURL:           "https://example.com/hiring/applicants/?jobId=%s",
		ListURLWithFilter: "https://example.com/hiring/applicants/?jobId=%s&rating=%s",
		LandingMarkers:    []string{"hiring", "applicants"},
		ItemMarker:        types.Css(".item"),
		IdentityAttr:      "aria-label",
		IdentitySuffix:    ", Verified profile",
		LoadMoreMarker:    "Load more",
		LoadMoreChain:     []types.Locator{types.Css("#load-more")},
		ListContainer:     &container,
		NameChain:         []types.Locator{types.Css("#name-a"), types.Css("#name-b"), types.Css("#name-c")},
		HeadlineChain:     []types.Locator{types.Css("#headline")},
		LocationChain:     []types.Locator{types.Css("#location")},
		ProfileURLChain:   []types.Locator{types.Css("#profile-link")},
		ProfileURLMarker:  "/in/",
		RevealChain:       []types.Locator{types.Css("#contact")},
		PhoneChain:        []types.Locator{types.Css("#phone")},
		EmailChain:        []types.Locator{types.Css("#email")},
		DismissChain:      []types.Locator{types.Css("#dismiss")},
		MessageChain:      []types.Locator{types.Css("#message")},
		TextboxChain:      []types.Locator{types.Css("#textbox")},
		SendChain:         []types.Locator{types.Css("#send")},
		BodyLocator:       types.Css("body"),
		ButtonsLocator:    types.Css("button"),
	}
}

func testPacing() Pacing {
	return Pacing{}
}

func testBudget() Budget {
	return Budget{MaxLoadAttempts: 50, MaxLoadFailures: 3, NoProgressLimit: 2, ScrollIncrement: 200}
}
