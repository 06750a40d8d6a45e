package harvest

import (
	"strings"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/chrome"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/types"
)

// Discovered 当前窗口内的一条列表项
// Key是去掉认证后缀的身份键,Handle只在本轮有效,跨轮必须重新发现
type Discovered struct {
	Key    string
	Handle types.Handle
}

// Discoverer 扫描阶段的发现器:每轮重新查询DOM,
// 因为虚拟列表会驱逐离开视口的节点,旧句柄不可信
type Discoverer struct {
	driver  chrome.PageDriver
	profile *Profile
}

func NewDiscoverer(driver chrome.PageDriver, profile *Profile) *Discoverer {
	return &Discoverer{driver: driver, profile: profile}
}

// DiscoverVisible 返回当前渲染出来的列表项及其身份键
// 只做本轮内去重,跨轮去重由调用方的已见集合负责
// 取不到身份属性或键为空的项直接跳过,不算错误
func (d *Discoverer) DiscoverVisible() []Discovered {
	handles, err := d.driver.FindAll(d.profile.ItemMarker)
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{}, len(handles))
	out := make([]Discovered, 0, len(handles))
	for _, h := range handles {
		label, ok, err := d.driver.Attribute(h, d.profile.IdentityAttr)
		if err != nil || !ok {
			continue
		}
		key := strings.TrimSpace(strings.TrimSuffix(label, d.profile.IdentitySuffix))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Discovered{Key: key, Handle: h})
	}
	return out
}
