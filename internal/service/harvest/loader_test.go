package harvest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandClicksLoadMoreUntilTarget(t *testing.T) {
	d := newFakeDriver("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	d.loadedCount = 2
	d.enableLoadMore(3)

	loader := NewLoader(d, testProfile(), testPacing(), testBudget())
	got := loader.Expand(context.Background(), 8)

	require.GreaterOrEqual(t, got, 8)
	require.Equal(t, got, d.loadedCount)
	// 目标达成后不再触发加载
	require.LessOrEqual(t, d.loadedCount, 10)
}

func TestExpandSkipsHiddenAndDisabledButtons(t *testing.T) {
	d := newFakeDriver("a", "b", "c", "d", "e", "f")
	d.loadedCount = 2
	dead := d.enableLoadMore(2)
	dead.disabled = true
	live := d.enableLoadMore(2)

	loader := NewLoader(d, testProfile(), testPacing(), testBudget())
	got := loader.Expand(context.Background(), 6)

	require.Equal(t, 6, got)
	require.NotNil(t, live)
}

func TestExpandStopsAfterFailureStreak(t *testing.T) {
	d := newFakeDriver("a", "b")
	// 没有加载按钮,滚动也不带来增长
	loader := NewLoader(d, testProfile(), testPacing(), testBudget())
	got := loader.Expand(context.Background(), 10)

	require.Equal(t, 2, got)
	// 连续失败达到上限就停,不烧满总预算
	require.Equal(t, testBudget().MaxLoadFailures, d.scrolls)
}

func TestExpandScrollGrowthFallback(t *testing.T) {
	d := newFakeDriver("a", "b", "c", "d", "e", "f")
	d.loadedCount = 2
	d.growPerScroll = 2

	loader := NewLoader(d, testProfile(), testPacing(), testBudget())
	got := loader.Expand(context.Background(), 6)

	require.Equal(t, 6, got)
}

func TestExpandFailureStreakResetsOnProgress(t *testing.T) {
	d := newFakeDriver("a", "b", "c", "d", "e", "f", "g", "h")
	d.loadedCount = 2
	// 每隔一次滚动才有增长,中间的空转不应累计成终止条件
	d.growPerScroll = 1
	d.growEvery = 2

	loader := NewLoader(d, testProfile(), testPacing(), Budget{
		MaxLoadAttempts: 50,
		MaxLoadFailures: 2,
		NoProgressLimit: 2,
		ScrollIncrement: 200,
	})
	got := loader.Expand(context.Background(), 8)

	require.Equal(t, 8, got)
}

func TestExpandHonorsMaxLoadAttempts(t *testing.T) {
	d := newFakeDriver("a", "b", "c", "d", "e", "f", "g", "h")
	d.loadedCount = 1
	// 每次滚动都有增长,失败流从不累计,只有总预算能停住它
	d.growPerScroll = 1

	loader := NewLoader(d, testProfile(), testPacing(), Budget{
		MaxLoadAttempts: 3,
		MaxLoadFailures: 10,
		NoProgressLimit: 2,
		ScrollIncrement: 200,
	})
	got := loader.Expand(context.Background(), 100)

	require.Equal(t, 4, got)
	require.Equal(t, 3, d.scrolls)
}

func TestExpandStopsOnContextCancel(t *testing.T) {
	d := newFakeDriver("a", "b", "c", "d")
	d.loadedCount = 1
	d.growPerScroll = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(d, testProfile(), testPacing(), testBudget())
	got := loader.Expand(ctx, 4)

	require.Equal(t, 1, got)
	require.Zero(t, d.scrolls)
}
