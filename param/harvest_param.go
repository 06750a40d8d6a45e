package param

import "time"

// RatingFilter 目标服务的评级过滤,原样拼进导航URL,引擎不解释其含义
type RatingFilter string

const (
	RatingGoodFit RatingFilter = "GOOD_FIT"
	RatingMaybe   RatingFilter = "MAYBE"
	RatingNotAFit RatingFilter = "NOT_A_FIT"
	RatingAll     RatingFilter = "ALL"
)

// Harvest 一次采集运行的入参
type Harvest struct {
	JobID        string        `json:"job_id"`
	MaxItems     int           `json:"max_items"`
	PerItemDelay time.Duration `json:"per_item_delay"`
	RatingFilter RatingFilter  `json:"rating_filter"`
}

func (h *Harvest) IsValid() bool {
	return h.JobID != "" && h.MaxItems > 0 && h.PerItemDelay >= 0
}

// Message 向单个候选人发站内信的入参
type Message struct {
	JobID         string `json:"job_id"`
	ApplicantName string `json:"applicant_name"`
	Text          string `json:"text"`
}

func (m *Message) IsValid() bool {
	return m.JobID != "" && m.ApplicantName != "" && m.Text != ""
}
