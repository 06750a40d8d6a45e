package entity

import (
	"time"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/model"
)

// Applicant 一条候选人抓取结果
// 以列表项的可见标签(去掉认证后缀后的姓名)为身份键,
// 首次抽取成功时创建,追加进结果后不再修改,也不做合并更新
type Applicant struct {
	Name       string `json:"name"`
	Headline   string `json:"headline"`
	Location   string `json:"location"`
	ProfileURL string `json:"profile_url"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// HarvestResult 一次采集运行的聚合结果,只在运行结束(或提前终止)时返回一次
type HarvestResult struct {
	JobID          string       `json:"job_id"`
	TotalProcessed int          `json:"total_processed"`
	PhonesFound    int          `json:"phones_found"`
	EmailsFound    int          `json:"emails_found"`
	Applicants     []*Applicant `json:"applicants"`
}

// Append 追加一条结果并维护联系方式计数
func (hr *HarvestResult) Append(a *Applicant) {
	hr.Applicants = append(hr.Applicants, a)
	hr.TotalProcessed = len(hr.Applicants)
	if a.Phone != "" {
		hr.PhonesFound++
	}
	if a.Email != "" {
		hr.EmailsFound++
	}
}

// Harvestable 可入库的实体接口,D是文档类型,须实现model.Document
type Harvestable[D model.Document] interface {
	*Applicant
	ToDocument(jobID, index string) D
}

// ToDocument 转为Elasticsearch文档,文档ID由职位与姓名共同决定,
// 同一职位同名候选人重复入库时覆盖而非累积
func (a *Applicant) ToDocument(jobID, index string) *model.ApplicantDoc {
	return &model.ApplicantDoc{
		JobID:       jobID,
		Name:        a.Name,
		Headline:    a.Headline,
		Location:    a.Location,
		ProfileURL:  a.ProfileURL,
		Phone:       a.Phone,
		Email:       a.Email,
		HarvestedAt: time.Now().Format(time.RFC3339),
		Index:       index,
	}
}
