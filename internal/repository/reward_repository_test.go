package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRewardRepositoryTest(t *testing.T) (*GormRewardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:reward_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Reward{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewRewardRepository(db), db
}

func createReward(t *testing.T, repo *GormRewardRepository, name, category string, points int64, quantity int, active bool) models.Reward {
	t.Helper()
	reward := models.Reward{
		Name:     name,
		Category: category,
		Points:   models.NewPointsFromInt(points),
		Quantity: quantity,
		IsActive: true,
	}
	if err := repo.Create(&reward); err != nil {
		t.Fatalf("create reward failed: %v", err)
	}
	if !active {
		reward.IsActive = false
		if err := repo.Update(&reward); err != nil {
			t.Fatalf("update inactive reward failed: %v", err)
		}
	}
	return reward
}

func TestDecrementQuantityStopsAtZero(t *testing.T) {
	repo, db := setupRewardRepositoryTest(t)
	reward := createReward(t, repo, "Rolex Submariner Date", constants.CategoryAccessory, 120000, 1, true)

	affected, err := repo.DecrementQuantity(reward.ID)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	var stored models.Reward
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if stored.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", stored.Quantity)
	}

	// 库存归零后条件更新不再命中
	affected, err = repo.DecrementQuantity(reward.ID)
	if err != nil {
		t.Fatalf("second decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows affected at zero stock, got %d", affected)
	}

	if _, err := repo.DecrementQuantity(0); err == nil {
		t.Fatalf("expected invalid id rejected")
	}
}

func TestIncrementAndSetQuantity(t *testing.T) {
	repo, db := setupRewardRepositoryTest(t)
	reward := createReward(t, repo, "Limited Edition Hoodie", constants.CategoryMerch, 800, 2, true)

	affected, err := repo.IncrementQuantity(reward.ID, 8)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}
	var stored models.Reward
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if stored.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", stored.Quantity)
	}

	if _, err := repo.IncrementQuantity(reward.ID, 0); err == nil {
		t.Fatalf("expected non-positive delta rejected")
	}

	affected, err = repo.SetQuantity(reward.ID, 0)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if stored.Quantity != 0 {
		t.Fatalf("expected quantity overwritten to 0, got %d", stored.Quantity)
	}

	if _, err := repo.SetQuantity(reward.ID, -1); err == nil {
		t.Fatalf("expected negative quantity rejected")
	}
	affected, err = repo.SetQuantity(99999, 5)
	if err != nil {
		t.Fatalf("set quantity on missing reward failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows affected for missing reward, got %d", affected)
	}
}

func TestSetActive(t *testing.T) {
	repo, db := setupRewardRepositoryTest(t)
	reward := createReward(t, repo, "MacBook Air M3", constants.CategoryGadget, 60000, 10, true)

	affected, err := repo.SetActive(reward.ID, false)
	if err != nil {
		t.Fatalf("set active failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}
	var stored models.Reward
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected reward deactivated")
	}

	affected, err = repo.SetActive(99999, true)
	if err != nil {
		t.Fatalf("set active on missing reward failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows affected for missing reward, got %d", affected)
	}
}

func TestPointsRange(t *testing.T) {
	repo, _ := setupRewardRepositoryTest(t)

	if _, _, ok, err := repo.PointsRange(); err != nil || ok {
		t.Fatalf("expected empty catalog range not ok, got ok=%v err=%v", ok, err)
	}

	createReward(t, repo, "Stainless Tumbler", constants.CategoryMerch, 300, 4, true)
	createReward(t, repo, "iPhone 16 Pro", constants.CategoryGadget, 45000, 20, true)
	createReward(t, repo, "BMW 320i Sedan", constants.CategoryCar, 2500000, 2, false) // 下架不参与区间

	min, max, ok, err := repo.PointsRange()
	if err != nil {
		t.Fatalf("points range failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected range available")
	}
	if min != 300 || max != 45000 {
		t.Fatalf("expected range [300, 45000], got [%d, %d]", min, max)
	}
}

func TestRewardListFilters(t *testing.T) {
	repo, _ := setupRewardRepositoryTest(t)
	createReward(t, repo, "Stainless Tumbler", constants.CategoryMerch, 300, 4, true)
	createReward(t, repo, "Limited Edition Hoodie", constants.CategoryMerch, 800, 150, true)
	createReward(t, repo, "iPhone 16 Pro", constants.CategoryGadget, 45000, 20, true)
	createReward(t, repo, "Rolex Submariner Date", constants.CategoryAccessory, 120000, 3, false)

	// 仅上架
	rewards, total, err := repo.List(RewardListFilter{OnlyActive: true, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(rewards) != 3 {
		t.Fatalf("expected 3 active rewards, got total=%d len=%d", total, len(rewards))
	}

	// 类目过滤
	rewards, total, err = repo.List(RewardListFilter{Categories: []string{constants.CategoryMerch}, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 merch rewards, got %d", total)
	}
	for _, reward := range rewards {
		if reward.Category != constants.CategoryMerch {
			t.Fatalf("unexpected category %q", reward.Category)
		}
	}

	// 关键字大小写不敏感
	rewards, total, err = repo.List(RewardListFilter{Search: "hoodie", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || rewards[0].Name != "Limited Edition Hoodie" {
		t.Fatalf("expected hoodie matched, got total=%d", total)
	}

	// 积分区间
	minPoints := int64(500)
	maxPoints := int64(50000)
	_, total, err = repo.List(RewardListFilter{MinPoints: &minPoints, MaxPoints: &maxPoints, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("points filter failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 rewards in [500, 50000], got %d", total)
	}

	// 按积分升序
	rewards, _, err = repo.List(RewardListFilter{SortPoints: constants.SortPointsLowToHigh, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	if len(rewards) != 4 || rewards[0].Name != "Stainless Tumbler" || rewards[3].Name != "Rolex Submariner Date" {
		t.Fatalf("unexpected low-to-high order: %v", rewardNames(rewards))
	}

	// 按积分降序
	rewards, _, err = repo.List(RewardListFilter{SortPoints: constants.SortPointsHighToLow, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	if rewards[0].Name != "Rolex Submariner Date" {
		t.Fatalf("unexpected high-to-low order: %v", rewardNames(rewards))
	}

	// 分页
	rewards, total, err = repo.List(RewardListFilter{SortPoints: constants.SortPointsLowToHigh, Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("pagination failed: %v", err)
	}
	if total != 4 || len(rewards) != 1 {
		t.Fatalf("expected second page with 1 reward, got total=%d len=%d", total, len(rewards))
	}
}

func rewardNames(rewards []models.Reward) []string {
	names := make([]string, 0, len(rewards))
	for _, reward := range rewards {
		names = append(names, reward.Name)
	}
	return names
}
