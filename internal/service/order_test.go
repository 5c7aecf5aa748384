package service

import (
	"context"
	"license-store/internal/model"
	"license-store/internal/repository"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.AmazonOrder{},
		&model.StateDelay{},
		&model.LicenseKey{},
		&model.SellerAccount{},
		&model.WarrantyRegistration{},
		&model.ReplacementRequest{},
		&model.CheckoutOrder{},
		&model.CheckoutItem{},
	))

	return db
}

func newOrderService(t *testing.T) (OrderService, repository.AmazonOrderRepository, repository.LicenseKeyRepository) {
	t.Helper()

	db := newServiceTestDB(t)
	orderRepo := repository.NewAmazonOrderRepository(db)
	keyRepo := repository.NewLicenseKeyRepository(db)
	codeGen := NewSecretCodeGeneratorWithRand(rand.New(rand.NewPCG(1, 2)), orderRepo.ExistsByOrderID)

	return NewOrderService(orderRepo, keyRepo, codeGen), orderRepo, keyRepo
}

func TestCreateManualValidation(t *testing.T) {
	svc, _, _ := newOrderService(t)

	cases := []struct {
		name  string
		input ManualOrderInput
	}{
		{"missing fsn", ManualOrderInput{AmazonOrderID: "403-1234567-1234567"}},
		{"no identifier", ManualOrderInput{FSN: "FSN001"}},
		{"both identifiers", ManualOrderInput{FSN: "FSN001", AmazonOrderID: "403-1234567-1234567", SecretCode: "123456789012345"}},
		{"malformed amazon id", ManualOrderInput{FSN: "FSN001", AmazonOrderID: "43-1234567-1234567"}},
		{"short secret code", ManualOrderInput{FSN: "FSN001", SecretCode: "12345678901234"}},
		{"secret code leading zero", ManualOrderInput{FSN: "FSN001", SecretCode: "012345678901234"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateManual(context.Background(), tc.input)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCreateManualRejectsDuplicateIdentifier(t *testing.T) {
	svc, _, _ := newOrderService(t)

	input := ManualOrderInput{FSN: "FSN001", AmazonOrderID: "403-1234567-1234567", State: "karnataka"}
	order, err := svc.CreateManual(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, string(model.FulfillmentFBA), order.FulfillmentType)
	assert.Equal(t, "KARNATAKA", order.State)
	assert.Equal(t, string(model.WarrantyPending), order.WarrantyStatus)

	_, err = svc.CreateManual(context.Background(), input)
	assert.ErrorIs(t, err, ErrOrderExists)
}

func TestCreateManualWithLicenseKey(t *testing.T) {
	svc, _, keyRepo := newOrderService(t)

	keyID := uuid.NewString()
	require.NoError(t, keyRepo.CreateBatch(context.Background(), []*model.LicenseKey{
		{ID: keyID, FSN: "FSN001", KeyValue: "KEY-0001"},
	}))

	order, err := svc.CreateManual(context.Background(), ManualOrderInput{
		FSN:          "FSN001",
		SecretCode:   "512345678901234",
		LicenseKeyID: keyID,
	})
	require.NoError(t, err)
	require.NotNil(t, order.LicenseKeyID)
	assert.Equal(t, keyID, *order.LicenseKeyID)

	key, err := keyRepo.FindByID(context.Background(), keyID)
	require.NoError(t, err)
	assert.True(t, key.IsRedeemed)
	require.NotNil(t, key.OrderID)
	assert.Equal(t, "512345678901234", *key.OrderID)

	// the key is spent now, a second order cannot claim it
	_, err = svc.CreateManual(context.Background(), ManualOrderInput{
		FSN:          "FSN001",
		SecretCode:   "612345678901234",
		LicenseKeyID: keyID,
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCreateBulk(t *testing.T) {
	svc, orderRepo, _ := newOrderService(t)

	codes, err := svc.CreateBulk(context.Background(), 25, "FSN001")
	require.NoError(t, err)
	require.Len(t, codes, 25)

	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		assert.Regexp(t, `^[1-9]\d{14}$`, code)
		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %s in batch", code)
		seen[code] = struct{}{}

		order, err := orderRepo.FindByOrderID(context.Background(), code)
		require.NoError(t, err)
		assert.Equal(t, "FSN001", order.FSN)
		assert.Equal(t, string(model.FulfillmentDigital), order.FulfillmentType)
		assert.Equal(t, string(model.WarrantyPending), order.WarrantyStatus)
	}
}

func TestCreateBulkBounds(t *testing.T) {
	svc, _, _ := newOrderService(t)

	var verr *ValidationError

	_, err := svc.CreateBulk(context.Background(), 0, "FSN001")
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreateBulk(context.Background(), 101, "FSN001")
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreateBulk(context.Background(), 10, "")
	assert.ErrorAs(t, err, &verr)
}

func TestIdentifierHelpers(t *testing.T) {
	assert.Equal(t, "4031234567", CleanIdentifier(" 403 123 4567 "))

	assert.True(t, IsAmazonOrderID("403-1234567-1234567"))
	assert.False(t, IsAmazonOrderID("123456789012345"))

	assert.True(t, IsLookupCode("123456789012345"))
	assert.True(t, IsLookupCode("1234567890123456"))
	assert.True(t, IsLookupCode("12345678901234567"))
	assert.False(t, IsLookupCode("123456789012345678"))
	assert.False(t, IsLookupCode("403-1234567-1234567"))
}
