package harvest

import (
	"time"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/types"
)

// Profile 一个虚拟列表页面的结构描述,引擎对目标站点的全部认知都在这里
// 每个逻辑字段给一条定位器回退链,链中第一个命中非空结果的定位器生效
// 引擎本身不含任何站点选择器,换个站点只需要换Profile
type Profile struct {
	// ListURL 列表页URL模板,%s处填列表/职位ID
	ListURL string
	// ListURLWithFilter 带过滤参数的URL模板,依次填ID与过滤值
	ListURLWithFilter string
	// LandingMarkers 落点检查:导航完成后当前URL须包含其中至少一个片段,
	// 否则视为无权限跳转,立即终止
	LandingMarkers []string

	// ItemMarker 标识"这是一个列表项"的结构特征
	ItemMarker types.Locator
	// IdentityAttr 身份键来源属性(可访问标签)
	IdentityAttr string
	// IdentitySuffix UI附加在标签尾部的认证标记,取身份键时剔除
	IdentitySuffix string

	// LoadMoreMarker 加载控件内部文本特征,先按钮全扫再走选择器链
	LoadMoreMarker string
	LoadMoreChain  []types.Locator

	// ListContainer 列表的可滚动容器,短列表可能不存在,缺失不算错误
	ListContainer *types.Locator

	// 详情面板字段链
	NameChain       []types.Locator
	HeadlineChain   []types.Locator
	LocationChain   []types.Locator
	ProfileURLChain []types.Locator
	// ProfileURLMarker 档案链接的路径特征,命中才算有效链接
	ProfileURLMarker string

	// RevealChain 联系方式展开控件(二段抽取的触发器)
	RevealChain []types.Locator
	PhoneChain  []types.Locator
	EmailChain  []types.Locator
	// DismissChain 弹层关闭控件,找不到时退回对页面发送取消键
	DismissChain []types.Locator

	// MessageChain 站内信相关控件链
	MessageChain   []types.Locator
	TextboxChain   []types.Locator
	SendChain      []types.Locator
	BodyLocator    types.Locator
	ButtonsLocator types.Locator
}

// Pacing 各动作后的安定等待,这些等待是页面异步渲染的硬性需求,不是优化项
type Pacing struct {
	LandingSettle    time.Duration
	ExtendedSettle   time.Duration
	PanelSettle      time.Duration
	RevealSettle     time.Duration
	DismissSettle    time.Duration
	LoadMoreSettle   time.Duration
	ScrollSettle     time.Duration
	FailedScrollWait time.Duration
}

// Budget 运行收敛预算,三类上限是运行提前结束的唯一途径
type Budget struct {
	// MaxLoadAttempts 批量加载阶段的总尝试上限,与调用方的maxItems无关,
	// 防止对远端无界交互
	MaxLoadAttempts int
	// MaxLoadFailures 连续加载失败(无增长)的上限
	MaxLoadFailures int
	// NoProgressLimit 抽取阶段连续无进展轮次上限
	NoProgressLimit int
	// ScrollIncrement 每轮推进视口的固定滚动量(px),与列表项高度无关
	ScrollIncrement int
}
