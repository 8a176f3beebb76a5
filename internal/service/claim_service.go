package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/logger"
	"github.com/time2claim/internal/models"
	"github.com/time2claim/internal/queue"
	"github.com/time2claim/internal/repository"

	"gorm.io/gorm"
)

const claimIDMaxAttempts = 5

// OutOfStockError 审批时库存不足错误，携带奖品名称
type OutOfStockError struct {
	RewardName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("This item is already out of stock. Cannot approve claim for \"%s\".", e.RewardName)
}

// Unwrap 支持 errors.Is(err, ErrRewardOutOfStock)
func (e *OutOfStockError) Unwrap() error {
	return ErrRewardOutOfStock
}

// ClaimService 领取单服务
type ClaimService struct {
	claimRepo   repository.ClaimRepository
	rewardRepo  repository.RewardRepository
	queueClient *queue.Client
	idPrefix    string
	idTokenLen  int
}

// NewClaimService 创建领取单服务
func NewClaimService(claimRepo repository.ClaimRepository, rewardRepo repository.RewardRepository, queueClient *queue.Client, idPrefix string, idTokenLen int) *ClaimService {
	prefix := strings.ToUpper(strings.TrimSpace(idPrefix))
	if prefix == "" {
		prefix = constants.ClaimIDPrefix
	}
	if idTokenLen <= 0 {
		idTokenLen = constants.ClaimIDTokenLength
	}
	return &ClaimService{
		claimRepo:   claimRepo,
		rewardRepo:  rewardRepo,
		queueClient: queueClient,
		idPrefix:    prefix,
		idTokenLen:  idTokenLen,
	}
}

// SubmitClaimInput 提交领取单输入
type SubmitClaimInput struct {
	RewardID        uint
	VariantOption   string
	Username        string
	FullName        string
	Phone           string
	Email           string
	DeliveryAddress string
	EwalletName     string
	EwalletAccount  string
}

// SubmitClaim 提交领取单，落库为待审核状态，不触碰库存
func (s *ClaimService) SubmitClaim(input SubmitClaimInput) (*models.Claim, error) {
	if input.RewardID == 0 {
		return nil, ErrClaimInvalid
	}
	username := strings.TrimSpace(input.Username)
	fullName := strings.TrimSpace(input.FullName)
	phone := strings.TrimSpace(input.Phone)
	if username == "" || fullName == "" || phone == "" {
		return nil, ErrClaimInvalid
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, ErrInvalidEmail
		}
	}

	reward, err := s.rewardRepo.GetByID(input.RewardID)
	if err != nil {
		return nil, ErrRewardFetchFailed
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}
	if !reward.IsActive {
		return nil, ErrRewardInactive
	}

	variantOption := strings.TrimSpace(input.VariantOption)
	if len(reward.VariantOptions) > 0 {
		if variantOption == "" || !containsOption(reward.VariantOptions, variantOption) {
			return nil, ErrVariantOptionInvalid
		}
	} else if variantOption != "" {
		return nil, ErrVariantOptionInvalid
	}

	claim := &models.Claim{
		RewardID:      reward.ID,
		VariantOption: variantOption,
		Username:      username,
		FullName:      fullName,
		Phone:         phone,
		Email:         email,
		Status:        constants.ClaimStatusPending,
	}
	// E-wallet 类奖品收集钱包信息，其余类目收集收货地址
	if reward.Category == constants.CategoryEwallet {
		ewalletName := strings.TrimSpace(input.EwalletName)
		ewalletAccount := strings.TrimSpace(input.EwalletAccount)
		if ewalletName == "" || ewalletAccount == "" {
			return nil, ErrClaimEwalletRequired
		}
		claim.EwalletName = ewalletName
		claim.EwalletAccount = ewalletAccount
	} else {
		address := strings.TrimSpace(input.DeliveryAddress)
		if address == "" {
			return nil, ErrClaimAddressRequired
		}
		claim.DeliveryAddress = address
	}

	claimID, err := s.generateClaimID()
	if err != nil {
		return nil, ErrClaimSubmitFailed
	}
	claim.ClaimID = claimID

	if err := s.claimRepo.Create(claim); err != nil {
		logger.Errorw("claim_create_failed",
			"reward_id", reward.ID,
			"username", username,
			"error", err,
		)
		return nil, ErrClaimSubmitFailed
	}
	claim.Reward = *reward
	s.enqueueStatusEmail(claim.ID, claim.Status)
	return claim, nil
}

// TransitionStatus 管理端变更领取单状态，审批在单事务内扣减库存
func (s *ClaimService) TransitionStatus(claimRowID uint, targetStatus, reason string) (*models.Claim, error) {
	claim, err := s.claimRepo.GetByID(claimRowID)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}

	target := NormalizeClaimStatus(targetStatus)
	if target == "" {
		return nil, ErrClaimTransitionInvalid
	}
	if !isTransitionAllowed(claim.Status, target) {
		return nil, ErrClaimTransitionInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}

	switch target {
	case constants.ClaimStatusRejected:
		trimmed := strings.TrimSpace(reason)
		if trimmed == "" {
			return nil, ErrClaimReasonRequired
		}
		updates["rejection_reason"] = trimmed
		if err := s.claimRepo.UpdateStatus(claim.ID, target, updates); err != nil {
			return nil, ErrClaimUpdateFailed
		}
		claim.RejectionReason = trimmed
	case constants.ClaimStatusApproved:
		rewardName := claim.Reward.Name
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			rewardRepo := s.rewardRepo.WithTx(tx)
			claimRepo := s.claimRepo.WithTx(tx)
			affected, err := rewardRepo.DecrementQuantity(claim.RewardID)
			if err != nil {
				return ErrClaimUpdateFailed
			}
			if affected == 0 {
				return &OutOfStockError{RewardName: rewardName}
			}
			if err := claimRepo.UpdateStatus(claim.ID, target, updates); err != nil {
				return ErrClaimUpdateFailed
			}
			return nil
		})
		if err != nil {
			var oos *OutOfStockError
			if errors.As(err, &oos) {
				return nil, oos
			}
			return nil, ErrClaimUpdateFailed
		}
		s.enqueueLowStockScan()
	default:
		if err := s.claimRepo.UpdateStatus(claim.ID, target, updates); err != nil {
			return nil, ErrClaimUpdateFailed
		}
	}

	claim.Status = target
	claim.UpdatedAt = now
	s.enqueueStatusEmail(claim.ID, target)
	return claim, nil
}

// GetByClaimID 根据领取单号查询（公开查询入口）
func (s *ClaimService) GetByClaimID(claimID string) (*models.Claim, error) {
	code := strings.TrimSpace(claimID)
	if code == "" {
		return nil, ErrClaimInvalid
	}
	claim, err := s.claimRepo.GetByClaimID(code)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	return claim, nil
}

// GetByID 根据行 ID 查询
func (s *ClaimService) GetByID(id uint) (*models.Claim, error) {
	claim, err := s.claimRepo.GetByID(id)
	if err != nil {
		return nil, ErrClaimFetchFailed
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	return claim, nil
}

// ListClaims 管理端分页查询领取单
func (s *ClaimService) ListClaims(filter repository.ClaimListFilter) ([]models.Claim, int64, error) {
	claims, total, err := s.claimRepo.List(filter)
	if err != nil {
		return nil, 0, ErrClaimFetchFailed
	}
	return claims, total, nil
}

// generateClaimID 生成形如 CLM-XXXXXXXXX 的领取单号，碰撞时重试
func (s *ClaimService) generateClaimID() (string, error) {
	for attempt := 0; attempt < claimIDMaxAttempts; attempt++ {
		token, err := randToken(constants.ClaimIDAlphabet, s.idTokenLen)
		if err != nil {
			return "", err
		}
		candidate := fmt.Sprintf("%s-%s", s.idPrefix, token)
		count, err := s.claimRepo.CountByClaimID(candidate)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("claim id generation exhausted after %d attempts", claimIDMaxAttempts)
}

func (s *ClaimService) enqueueStatusEmail(claimRowID uint, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueClaimStatusEmail(queue.ClaimStatusEmailPayload{
		ClaimID: claimRowID,
		Status:  status,
	}); err != nil {
		logger.Warnw("claim_enqueue_status_email_failed",
			"claim_id", claimRowID,
			"status", status,
			"error", err,
		)
	}
}

// enqueueLowStockScan 审批扣减库存后触发一次低库存巡检
func (s *ClaimService) enqueueLowStockScan() {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueLowStockAlertScan(queue.LowStockAlertScanPayload{}); err != nil {
		logger.Warnw("claim_enqueue_low_stock_scan_failed", "error", err)
	}
}

func containsOption(options []string, candidate string) bool {
	for _, option := range options {
		if strings.EqualFold(strings.TrimSpace(option), candidate) {
			return true
		}
	}
	return false
}

func randToken(alphabet string, length int) (string, error) {
	if length <= 0 || alphabet == "" {
		return "", fmt.Errorf("invalid token params")
	}
	var b strings.Builder
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}
