package serviceImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrilink/database"
	"agrilink/entities"
	contractrepoimp "agrilink/pkg/contract/repositoryImp"
	"agrilink/pkg/contract/service"
	farmerrepo "agrilink/pkg/farmer/repository"
	farmerrepoimp "agrilink/pkg/farmer/repositoryImp"
)

type testEnv struct {
	svc     service.ContractService
	farmers farmerrepo.FarmerRepository
	seed    *entities.Contract
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db := database.OpenSQLite(filepath.Join(t.TempDir(), "contracts.db"))
	farmers := farmerrepoimp.New(db)
	contracts := contractrepoimp.New(db)

	require.NoError(t, farmers.Create(&entities.Farmer{
		Name:  "Manjunath",
		Phone: "9876543210",
	}))

	seed := &entities.Contract{
		Reference: "CT-TEST00000001",
		FarmerID:  1,
		CompanyID: 7,
		Details:   entities.ContractDetails{CropType: "Tomato", QuantityKg: 500, PricePerKg: 25},
		Status:    entities.ContractPending,
	}
	require.NoError(t, contracts.Create(seed))

	return &testEnv{
		svc:     New(contracts, farmers, zap.NewNop().Sugar()),
		farmers: farmers,
		seed:    seed,
	}
}

func TestConfirm(t *testing.T) {
	t.Run("farmer confirms pending contract", func(t *testing.T) {
		env := setup(t)

		c, err := env.svc.Confirm(context.Background(), env.seed.ContractID, 1)
		require.NoError(t, err)
		assert.Equal(t, entities.ContractConfirmed, c.Status)
	})

	t.Run("only the contract's farmer may confirm", func(t *testing.T) {
		env := setup(t)

		_, err := env.svc.Confirm(context.Background(), env.seed.ContractID, 99)
		assert.ErrorIs(t, err, service.ErrNotParty)
	})

	t.Run("confirming twice fails", func(t *testing.T) {
		env := setup(t)

		_, err := env.svc.Confirm(context.Background(), env.seed.ContractID, 1)
		require.NoError(t, err)
		_, err = env.svc.Confirm(context.Background(), env.seed.ContractID, 1)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}

func TestComplete(t *testing.T) {
	qc := entities.QualityCheck{ActualGrade: "A", ActualQuantityKg: 495, Approved: true}

	t.Run("company completes confirmed contract and pays out balance", func(t *testing.T) {
		env := setup(t)
		_, err := env.svc.Confirm(context.Background(), env.seed.ContractID, 1)
		require.NoError(t, err)

		c, err := env.svc.Complete(context.Background(), env.seed.ContractID, 7, qc)
		require.NoError(t, err)

		assert.Equal(t, entities.ContractCompleted, c.Status)
		assert.True(t, c.Payment.BalancePaid)
		require.NotNil(t, c.QualityCheck)
		assert.Equal(t, "A", c.QualityCheck.ActualGrade)

		// 80% of 500kg * 25/kg lands in the wallet as one credit.
		farmer, err := env.farmers.FindByID(1)
		require.NoError(t, err)
		assert.Equal(t, 10000.0, farmer.WalletBalance)

		txs, err := env.farmers.Transactions(1)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, "credit", txs[0].Type)
		assert.Equal(t, 10000.0, txs[0].Amount)
		assert.Contains(t, txs[0].Description, "CT-TEST00000001")
	})

	t.Run("pending contract cannot be completed directly", func(t *testing.T) {
		env := setup(t)

		_, err := env.svc.Complete(context.Background(), env.seed.ContractID, 7, qc)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)

		farmer, err := env.farmers.FindByID(1)
		require.NoError(t, err)
		assert.Equal(t, 0.0, farmer.WalletBalance)
	})

	t.Run("only the contract's company may complete", func(t *testing.T) {
		env := setup(t)
		_, err := env.svc.Confirm(context.Background(), env.seed.ContractID, 1)
		require.NoError(t, err)

		_, err = env.svc.Complete(context.Background(), env.seed.ContractID, 42, qc)
		assert.ErrorIs(t, err, service.ErrNotParty)
	})

	t.Run("completing twice fails", func(t *testing.T) {
		env := setup(t)
		_, err := env.svc.Confirm(context.Background(), env.seed.ContractID, 1)
		require.NoError(t, err)
		_, err = env.svc.Complete(context.Background(), env.seed.ContractID, 7, qc)
		require.NoError(t, err)

		_, err = env.svc.Complete(context.Background(), env.seed.ContractID, 7, qc)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)

		// No double payout.
		farmer, err := env.farmers.FindByID(1)
		require.NoError(t, err)
		assert.Equal(t, 10000.0, farmer.WalletBalance)
	})
}
