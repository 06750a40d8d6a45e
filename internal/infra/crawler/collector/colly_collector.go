package collector

import (
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/config"
)

type collyCrawler struct {
	colly *colly.Collector
}

func InitCollyCrawler(cfg *config.Config) CollyCrawler {
	var opts []colly.CollectorOption
	opts = append(opts,
		colly.UserAgent(cfg.Colly.UserAgent),
		colly.AllowedDomains(cfg.Colly.AllowedDomains...),
	)
	if cfg.Colly.IgnoreRobotsTxt {
		opts = append(opts, colly.IgnoreRobotsTxt())
	}
	c := colly.NewCollector(opts...)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Colly.Parallelism,
		Delay:       time.Duration(cfg.Colly.Delay) * time.Second,
		RandomDelay: time.Duration(cfg.Colly.RandomDelay) * time.Second,
	})
	log.Printf("InitCollyCrawler, parallelism: %d, delay: %d, randomDelay: %d",
		cfg.Colly.Parallelism, cfg.Colly.Delay, cfg.Colly.RandomDelay)
	return &collyCrawler{
		colly: c,
	}
}

func (c *collyCrawler) Visit(url string) error {
	err := c.colly.Visit(url)
	if err != nil {
		return fmt.Errorf("访问URL失败: %w", err)
	}
	return nil
}

func (c *collyCrawler) Wait() {
	c.colly.Wait()
}

func (c *collyCrawler) OnRequest(callback func(r *colly.Request)) {
	c.colly.OnRequest(callback)
}

func (c *collyCrawler) OnResponse(callback func(r *colly.Response)) {
	c.colly.OnResponse(callback)
}

func (c *collyCrawler) OnError(callback func(r *colly.Response, err error)) {
	c.colly.OnError(callback)
}
