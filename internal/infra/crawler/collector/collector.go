package collector

import (
	"github.com/gocolly/colly/v2"
)

// CollyCrawler colly采集器封装,档案链接核验走这里的普通HTTP通道,
// 不触碰浏览器会话
type CollyCrawler interface {
	Visit(url string) error
	Wait()
	OnRequest(callback func(r *colly.Request))
	OnResponse(callback func(r *colly.Response))
	OnError(callback func(r *colly.Response, err error))
}
