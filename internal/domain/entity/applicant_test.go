package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHarvestResultAppendMaintainsCounters(t *testing.T) {
	hr := &HarvestResult{JobID: "4012345678"}
	hr.Append(&Applicant{Name: "Alice", Phone: "+15550100", Email: "alice@example.com"})
	hr.Append(&Applicant{Name: "Bob", Phone: "+15550101"})
	hr.Append(&Applicant{Name: "Carol"})

	require.Equal(t, 3, hr.TotalProcessed)
	require.Equal(t, 2, hr.PhonesFound)
	require.Equal(t, 1, hr.EmailsFound)
}

func TestToDocument(t *testing.T) {
	a := &Applicant{
		Name:       "Alice",
		Headline:   "Backend Engineer",
		Location:   "Berlin",
		ProfileURL: "https://example.com/in/alice",
		Phone:      "+15550100",
		Email:      "alice@example.com",
	}

	doc := a.ToDocument("4012345678", "linkedin_applicant")

	require.Equal(t, "4012345678", doc.JobID)
	require.Equal(t, "Alice", doc.Name)
	require.Equal(t, "linkedin_applicant", doc.Index)
	require.NotEmpty(t, doc.HarvestedAt)
	// 同一职位同名候选人的文档ID必须稳定,重复入库覆盖而非累积
	other := a.ToDocument("4012345678", "linkedin_applicant")
	require.Equal(t, doc.GetID(), other.GetID())
}
