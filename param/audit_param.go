package param

// Audit 档案链接核验的入参
type Audit struct {
	// Concurrency 并发核验数,核验走普通HTTP请求,不占用浏览器会话
	Concurrency int      `json:"concurrency"`
	ProfileURLs []string `json:"profile_urls"`
}

func (a *Audit) IsValid() bool {
	return a.Concurrency > 0 && len(a.ProfileURLs) > 0
}
