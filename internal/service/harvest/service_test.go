package harvest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/entity"
	"github.com/dineshroxonn/linkedin-mcp-server/internal/domain/model"
	"github.com/dineshroxonn/linkedin-mcp-server/param"
)

func newTestService(d *fakeDriver) Service[*entity.Applicant, *model.ApplicantDoc] {
	return InitHarvestService[*entity.Applicant, *model.ApplicantDoc](
		d, nil, nil, testProfile(), testPacing(), testBudget())
}

func TestHarvestRespectsMaxItems(t *testing.T) {
	d := newFakeDriver("Alice", "Bob", "Carol", "Dave", "Eve")
	svc := newTestService(d)

	result, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:    "4012345678",
		MaxItems: 3,
	})

	require.NoError(t, err)
	require.Equal(t, 3, result.TotalProcessed)
	require.Len(t, result.Applicants, 3)
	require.Equal(t, "Alice", result.Applicants[0].Name)
	require.Equal(t, "Bob", result.Applicants[1].Name)
	require.Equal(t, "Carol", result.Applicants[2].Name)
	require.Equal(t, 3, result.PhonesFound)
	require.Equal(t, 3, result.EmailsFound)
}

func TestHarvestAccessDeniedBeforeAnyListQuery(t *testing.T) {
	d := newFakeDriver("Alice")
	d.redirectTo = "https://example.com/login?redirect=..."
	svc := newTestService(d)

	result, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:    "4012345678",
		MaxItems: 3,
	})

	require.Nil(t, result)
	var herr *HarvestError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, KindAccessDenied, herr.Kind)
	require.Equal(t, "4012345678", herr.Context["job_id"])
	require.Equal(t, d.url, herr.Context["current_url"])
	// 落点错误必须在任何列表查询之前判定
	require.Zero(t, d.findAllCalls[".item"])
}

func TestHarvestNoItemsFound(t *testing.T) {
	d := newFakeDriver()
	svc := newTestService(d)

	result, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:    "4012345678",
		MaxItems: 3,
	})

	require.Nil(t, result)
	var herr *HarvestError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, KindNoItemsFound, herr.Kind)
	require.Contains(t, herr.Message, "4012345678")
	// 首屏为空要延长等待后重判,不能一次定生死
	require.Equal(t, 2, d.findAllCalls[".item"])
}

func TestHarvestDeduplicatesByIdentityKey(t *testing.T) {
	d := newFakeDriver("Alice", "Alice", "Bob")
	svc := newTestService(d)

	result, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:    "4012345678",
		MaxItems: 10,
	})

	require.NoError(t, err)
	require.Equal(t, 2, result.TotalProcessed)
}

func TestHarvestWalksVirtualWindow(t *testing.T) {
	d := newFakeDriver("a", "b", "c", "d", "e", "f")
	d.windowSize = 2
	d.windowStep = 2
	svc := newTestService(d)

	result, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:    "4012345678",
		MaxItems: 6,
	})

	require.NoError(t, err)
	require.Equal(t, 6, result.TotalProcessed)
	// 抽取前列表要先回到顶部,否则窗口起点不确定
	require.Equal(t, 1, d.topScrolls)
}

func TestHarvestOverlappingWindowsCountOnce(t *testing.T) {
	d := newFakeDriver("a", "b", "c", "d", "e", "f")
	// 窗口大小3、步长2,相邻两轮窗口有一条重叠
	d.windowSize = 3
	d.windowStep = 2
	svc := newTestService(d)

	result, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:    "4012345678",
		MaxItems: 10,
	})

	require.NoError(t, err)
	require.Equal(t, 6, result.TotalProcessed)
	names := make([]string, 0, 6)
	for _, a := range result.Applicants {
		names = append(names, a.Name)
	}
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, names)
}

func TestHarvestStopsAfterNoProgressStreak(t *testing.T) {
	d := newFakeDriver("Alice", "Bob")
	svc := newTestService(d)

	result, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:    "4012345678",
		MaxItems: 10,
	})

	require.NoError(t, err)
	require.Equal(t, 2, result.TotalProcessed)
}

func TestHarvestRatingFilterInURL(t *testing.T) {
	d := newFakeDriver("Alice")
	svc := newTestService(d)

	_, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:        "4012345678",
		MaxItems:     1,
		RatingFilter: param.RatingGoodFit,
	})

	require.NoError(t, err)
	require.Len(t, d.navCalls, 1)
	require.Contains(t, d.navCalls[0], "jobId=4012345678")
	require.Contains(t, d.navCalls[0], "rating=GOOD_FIT")
}

func TestHarvestRatingAllMeansNoFilter(t *testing.T) {
	d := newFakeDriver("Alice")
	svc := newTestService(d)

	_, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:        "4012345678",
		MaxItems:     1,
		RatingFilter: param.RatingAll,
	})

	require.NoError(t, err)
	require.NotContains(t, d.navCalls[0], "rating=")
}

func TestHarvestRejectsInvalidParams(t *testing.T) {
	d := newFakeDriver("Alice")
	svc := newTestService(d)

	_, err := svc.Harvest(context.Background(), &param.Harvest{JobID: "", MaxItems: 3})
	require.Error(t, err)

	_, err = svc.Harvest(context.Background(), &param.Harvest{JobID: "4012345678", MaxItems: 0})
	require.Error(t, err)
	require.Empty(t, d.navCalls)
}

func TestHarvestPartialFieldsStillCounted(t *testing.T) {
	d := newFakeDriver("Alice", "Bob")
	delete(d.items[1].panel, "#contact")
	svc := newTestService(d)

	result, err := svc.Harvest(context.Background(), &param.Harvest{
		JobID:    "4012345678",
		MaxItems: 2,
	})

	require.NoError(t, err)
	require.Equal(t, 2, result.TotalProcessed)
	require.Equal(t, 1, result.PhonesFound)
	require.Equal(t, 1, result.EmailsFound)
	require.Empty(t, result.Applicants[1].Phone)
}

func TestSendMessage(t *testing.T) {
	d := newFakeDriver("Alice", "Bob")
	svc := newTestService(d)

	err := svc.SendMessage(context.Background(), &param.Message{
		JobID:         "4012345678",
		ApplicantName: "Bob",
		Text:          "您好,看到您投递了我们的职位",
	})

	require.NoError(t, err)
	require.Equal(t, 1, d.sent)
	require.Equal(t, []string{"您好,看到您投递了我们的职位"}, d.typed)
}

func TestSendMessageUnknownApplicant(t *testing.T) {
	d := newFakeDriver("Alice")
	svc := newTestService(d)

	err := svc.SendMessage(context.Background(), &param.Message{
		JobID:         "4012345678",
		ApplicantName: "Zed",
		Text:          "hello",
	})

	var herr *HarvestError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, KindMessageFail, herr.Kind)
	require.Zero(t, d.sent)
}

func TestSendMessageAccessDenied(t *testing.T) {
	d := newFakeDriver("Alice")
	d.redirectTo = "https://example.com/login"
	svc := newTestService(d)

	err := svc.SendMessage(context.Background(), &param.Message{
		JobID:         "4012345678",
		ApplicantName: "Alice",
		Text:          "hello",
	})

	var herr *HarvestError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, KindAccessDenied, herr.Kind)
}
