package harvest

import (
	"time"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/config"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/infra/crawler/types"
)

// LinkedInHiringProfile 领英招聘页(hiring/applicants)的列表描述,
// 选择器链按命中率从高到低排列
func LinkedInHiringProfile() *Profile {
	container := types.Css(`[class*="applicants__list"]`)
	return &Profile{
		ListURL:           "https://www.linkedin.com/hiring/applicants/?jobId=%s",
		ListURLWithFilter: "https://www.linkedin.com/hiring/applicants/?jobId=%s&rating=%s",
		LandingMarkers:    []string{"hiring", "applicants"},

		ItemMarker:     types.Xpath(`//*[contains(@aria-label, ", Verified profile")]`),
		IdentityAttr:   "aria-label",
		IdentitySuffix: ", Verified profile",

		LoadMoreMarker: "Load more",
		LoadMoreChain: []types.Locator{
			types.Xpath(`//button[contains(text(), "Load more")]`),
			types.Xpath(`//button[contains(., "Load more applicants")]`),
			types.Xpath(`//button[contains(@class, "load-more")]`),
			types.Xpath(`//div[contains(@class, "load-more")]//button`),
		},

		ListContainer: &container,

		NameChain: []types.Locator{
			types.Xpath(`//h1[contains(@class, "hiring")]`),
			types.Xpath(`//div[contains(@class, "profile")]//h1`),
			types.Xpath(`//*[contains(@class, "applicant-name")]`),
		},
		HeadlineChain: []types.Locator{
			types.Xpath(`//div[contains(@class, "headline")]`),
			types.Xpath(`//p[contains(@class, "subtitle")]`),
		},
		LocationChain: []types.Locator{
			types.Xpath(`//div[contains(@class, "location")]`),
			types.Xpath(`//span[contains(@class, "location")]`),
		},
		ProfileURLChain: []types.Locator{
			types.Xpath(`//a[contains(@aria-label, "View full profile")]`),
			types.Xpath(`//a[contains(@href, "/in/")]`),
		},
		ProfileURLMarker: "/in/",

		RevealChain: []types.Locator{
			types.Xpath(`//button[contains(., "Contact")]`),
			types.Xpath(`//button[@aria-label="Contact"]`),
			types.Xpath(`//button[.//span[contains(text(), "Contact")]]`),
		},
		PhoneChain: []types.Locator{
			types.Xpath(`//a[contains(@href, "tel:")]`),
			types.Xpath(`//*[contains(@class, "phone")]//span`),
			types.Xpath(`//div[contains(@class, "contact")]//a[contains(@href, "tel:")]`),
		},
		EmailChain: []types.Locator{
			types.Xpath(`//a[contains(@href, "mailto:")]`),
			types.Xpath(`//*[contains(@class, "email")]//span`),
		},
		DismissChain: []types.Locator{
			types.Xpath(`//button[@aria-label='Dismiss' or contains(@class, 'artdeco-modal__dismiss')]`),
		},

		MessageChain: []types.Locator{
			types.Xpath(`//button[contains(., "Message")]`),
			types.Xpath(`//button[@aria-label="Message"]`),
			types.Xpath(`//button[.//span[contains(text(), "Message")]]`),
		},
		TextboxChain: []types.Locator{
			types.Xpath(`//div[@role="textbox"]`),
			types.Xpath(`//textarea[contains(@class, "message")]`),
			types.Xpath(`//div[contains(@class, "msg-form__contenteditable")]`),
		},
		SendChain: []types.Locator{
			types.Xpath(`//button[contains(., "Send")]`),
			types.Xpath(`//button[@type="submit"]`),
			types.Xpath(`//button[contains(@class, "send")]`),
		},
		BodyLocator:    types.Css("body"),
		ButtonsLocator: types.Css("button"),
	}
}

// PacingFromConfig 把配置中的毫秒/秒数值转成节奏描述
func PacingFromConfig(cfg *config.Config) Pacing {
	h := cfg.Harvest
	return Pacing{
		LandingSettle:    time.Duration(h.LandingSettleSeconds) * time.Second,
		ExtendedSettle:   time.Duration(h.ExtendedSettleSeconds) * time.Second,
		PanelSettle:      time.Duration(h.PanelSettleMillis) * time.Millisecond,
		RevealSettle:     time.Duration(h.RevealSettleMillis) * time.Millisecond,
		DismissSettle:    150 * time.Millisecond,
		LoadMoreSettle:   time.Duration(h.LoadMoreSettleMillis) * time.Millisecond,
		ScrollSettle:     time.Duration(h.ScrollSettleMillis) * time.Millisecond,
		FailedScrollWait: time.Duration(h.FailedScrollPauseMills) * time.Millisecond,
	}
}

// BudgetFromConfig 把配置中的预算上限转成预算描述
func BudgetFromConfig(cfg *config.Config) Budget {
	h := cfg.Harvest
	return Budget{
		MaxLoadAttempts: h.MaxLoadAttempts,
		MaxLoadFailures: h.MaxLoadFailures,
		NoProgressLimit: h.NoProgressLimit,
		ScrollIncrement: h.ScrollIncrement,
	}
}
