package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/models"
	"github.com/time2claim/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRewardServiceTest(t *testing.T) (*RewardService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:reward_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Reward{}, &models.Claim{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewRewardService(repository.NewRewardRepository(db), repository.NewClaimRepository(db))
	return svc, db
}

func TestClassifyTier(t *testing.T) {
	cases := []struct {
		points int64
		name   string
		want   string
	}{
		{200000, "Luxury Cruise", constants.TierBlackDiamond},
		{1000, "BMW 320i Sedan", constants.TierBlackDiamond},
		{300, "Mercedes-Benz Keychain", constants.TierBlackDiamond},
		{75000, "Designer Bag", constants.TierDiamond},
		{100, "Rolex Submariner Date", constants.TierDiamond},
		{100, "Classic Watch", constants.TierDiamond},
		{25000, "Gaming Console", constants.TierGold},
		{100, "iPhone 16 Pro", constants.TierGold},
		{100, "MacBook Air M3", constants.TierGold},
		{500, "Bluetooth Speaker", constants.TierSilver},
		{499, "Sticker Pack", constants.TierBronze},
		{0, "Keychain", constants.TierBronze},
	}
	for _, tc := range cases {
		if got := ClassifyTier(tc.points, tc.name); got != tc.want {
			t.Fatalf("ClassifyTier(%d, %q) = %s, want %s", tc.points, tc.name, got, tc.want)
		}
	}
}

func TestCreateRewardValidation(t *testing.T) {
	svc, _ := setupRewardServiceTest(t)

	base := CreateRewardInput{
		Name:     "Limited Edition Hoodie",
		Category: constants.CategoryMerch,
		Points:   decimal.NewFromInt(800),
		Quantity: 10,
	}

	cases := []struct {
		name    string
		mutate  func(*CreateRewardInput)
		wantErr error
	}{
		{"empty name", func(in *CreateRewardInput) { in.Name = "  " }, ErrRewardInvalid},
		{"empty category", func(in *CreateRewardInput) { in.Category = "  " }, ErrRewardInvalid},
		{"negative points", func(in *CreateRewardInput) { in.Points = decimal.NewFromInt(-1) }, ErrRewardInvalid},
		{"zero points", func(in *CreateRewardInput) { in.Points = decimal.Zero }, ErrRewardInvalid},
		{"negative quantity", func(in *CreateRewardInput) { in.Quantity = -1 }, ErrRewardInvalid},
		{"blank variant option", func(in *CreateRewardInput) { in.VariantOptions = []string{"M", " "} }, ErrVariantOptionInvalid},
		{"duplicate variant option", func(in *CreateRewardInput) { in.VariantOptions = []string{"M", "m"} }, ErrVariantOptionInvalid},
		{
			"gallery for unknown option",
			func(in *CreateRewardInput) {
				in.VariantOptions = []string{"M"}
				in.Galleries = map[string][]string{"L": {"a.jpg"}}
			},
			ErrVariantOptionInvalid,
		},
		{
			"gallery too large",
			func(in *CreateRewardInput) {
				in.VariantOptions = []string{"M"}
				in.Galleries = map[string][]string{"M": {"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"}}
			},
			ErrGalleryTooLarge,
		},
	}
	for _, tc := range cases {
		input := base
		tc.mutate(&input)
		if _, err := svc.Create(input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestCreateRewardNormalizesCategory(t *testing.T) {
	svc, _ := setupRewardServiceTest(t)

	reward, err := svc.Create(CreateRewardInput{
		Name:           "Limited Edition Hoodie",
		Category:       "merch",
		Points:         decimal.NewFromInt(800),
		Quantity:       10,
		VariantKind:    "Size",
		VariantOptions: []string{"M", "L"},
		Galleries:      map[string][]string{"M": {"m-front.jpg", "m-back.jpg"}},
	})
	if err != nil {
		t.Fatalf("create reward failed: %v", err)
	}
	if reward.Category != constants.CategoryMerch {
		t.Fatalf("expected normalized category %q, got %q", constants.CategoryMerch, reward.Category)
	}
	if !reward.IsActive {
		t.Fatalf("expected new reward active by default")
	}
	if len(reward.Galleries["M"]) != 2 {
		t.Fatalf("expected gallery kept, got %+v", reward.Galleries)
	}

	// 分类是开放标签，管理员新增的分类原样保留
	voucher, err := svc.Create(CreateRewardInput{
		Name:     "Spa Voucher",
		Category: "  Voucher ",
		Points:   decimal.NewFromInt(1200),
		Quantity: 5,
	})
	if err != nil {
		t.Fatalf("create reward with new category failed: %v", err)
	}
	if voucher.Category != "Voucher" {
		t.Fatalf("expected new category kept as %q, got %q", "Voucher", voucher.Category)
	}

	category := "experience"
	updated, err := svc.Update(voucher.ID, UpdateRewardInput{Category: &category})
	if err != nil {
		t.Fatalf("update reward category failed: %v", err)
	}
	if updated.Category != "experience" {
		t.Fatalf("expected updated category %q, got %q", "experience", updated.Category)
	}
}

func TestRewardPointsMustBePositive(t *testing.T) {
	svc, _ := setupRewardServiceTest(t)

	if _, err := svc.Create(CreateRewardInput{
		Name:     "Free Sticker",
		Category: constants.CategoryMerch,
		Points:   decimal.Zero,
		Quantity: 10,
	}); !errors.Is(err, ErrRewardInvalid) {
		t.Fatalf("expected zero-point reward rejected, got %v", err)
	}

	reward, err := svc.Create(CreateRewardInput{
		Name:     "Enamel Pin",
		Category: constants.CategoryMerch,
		Points:   decimal.NewFromInt(200),
		Quantity: 10,
	})
	if err != nil {
		t.Fatalf("create reward failed: %v", err)
	}
	zero := decimal.Zero
	if _, err := svc.Update(reward.ID, UpdateRewardInput{Points: &zero}); !errors.Is(err, ErrRewardInvalid) {
		t.Fatalf("expected zero-point update rejected, got %v", err)
	}
}

func TestUpdateRewardPartial(t *testing.T) {
	svc, _ := setupRewardServiceTest(t)

	reward, err := svc.Create(CreateRewardInput{
		Name:     "Stainless Tumbler",
		Category: constants.CategoryMerch,
		Points:   decimal.NewFromInt(300),
		Quantity: 10,
	})
	if err != nil {
		t.Fatalf("create reward failed: %v", err)
	}

	points := decimal.NewFromInt(450)
	updated, err := svc.Update(reward.ID, UpdateRewardInput{Points: &points})
	if err != nil {
		t.Fatalf("update reward failed: %v", err)
	}
	if updated.Points.Decimal.IntPart() != 450 {
		t.Fatalf("expected points 450, got %s", updated.Points.Decimal.String())
	}
	if updated.Name != "Stainless Tumbler" || updated.Quantity != 10 {
		t.Fatalf("expected untouched fields preserved: %+v", updated)
	}

	if _, err := svc.Update(99999, UpdateRewardInput{Points: &points}); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPublicOnlyActiveWithPointsRange(t *testing.T) {
	svc, db := setupRewardServiceTest(t)

	rewardsSeed := []models.Reward{
		{Name: "Active Low", Category: constants.CategoryMerch, Points: models.NewPointsFromInt(300), Quantity: 5, IsActive: true},
		{Name: "Active High", Category: constants.CategoryGadget, Points: models.NewPointsFromInt(45000), Quantity: 5, IsActive: true},
		{Name: "Hidden", Category: constants.CategoryCar, Points: models.NewPointsFromInt(2500000), Quantity: 1, IsActive: false},
	}
	for i := range rewardsSeed {
		inactive := !rewardsSeed[i].IsActive
		rewardsSeed[i].IsActive = true
		if err := db.Create(&rewardsSeed[i]).Error; err != nil {
			t.Fatalf("create reward failed: %v", err)
		}
		if inactive {
			rewardsSeed[i].IsActive = false
			if err := db.Save(&rewardsSeed[i]).Error; err != nil {
				t.Fatalf("update inactive reward failed: %v", err)
			}
		}
	}
	hiddenID := rewardsSeed[2].ID

	rewards, total, pointsRange, err := svc.ListPublic(repository.RewardListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 2 || len(rewards) != 2 {
		t.Fatalf("expected 2 active rewards, got total=%d len=%d", total, len(rewards))
	}
	if pointsRange == nil {
		t.Fatalf("expected points range")
	}
	if pointsRange.Min != 300 || pointsRange.Max != 45000 {
		t.Fatalf("expected range [300, 45000], got [%d, %d]", pointsRange.Min, pointsRange.Max)
	}

	if _, err := svc.GetPublicByID(hiddenID); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("expected inactive reward hidden from public detail, got %v", err)
	}
}

func TestDeleteRewardWithOpenClaims(t *testing.T) {
	svc, db := setupRewardServiceTest(t)

	reward, err := svc.Create(CreateRewardInput{
		Name:     "iPhone 16 Pro",
		Category: constants.CategoryGadget,
		Points:   decimal.NewFromInt(45000),
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("create reward failed: %v", err)
	}
	claim := models.Claim{
		ClaimID:         "CLM-TESTDEL01",
		RewardID:        reward.ID,
		Username:        "jdoe",
		FullName:        "John Doe",
		Phone:           "09171234567",
		DeliveryAddress: "123 Main St",
		Status:          constants.ClaimStatusPending,
	}
	if err := db.Create(&claim).Error; err != nil {
		t.Fatalf("create claim failed: %v", err)
	}

	// 存在未完结领取单时仍可删除，领取单作为历史保留
	if err := svc.Delete(reward.ID); err != nil {
		t.Fatalf("delete reward failed: %v", err)
	}
	if _, err := svc.GetByID(reward.ID); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("expected reward gone, got %v", err)
	}
	var storedClaim models.Claim
	if err := db.First(&storedClaim, claim.ID).Error; err != nil {
		t.Fatalf("expected claim preserved after reward delete: %v", err)
	}
}
