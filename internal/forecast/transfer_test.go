package forecast

import (
	"testing"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inflow(account, description string, amount float64) domain.DayTransaction {
	return domain.DayTransaction{
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Account:     account,
		Direction:   domain.DirectionInflow,
	}
}

func outflow(account, description string, amount float64) domain.DayTransaction {
	return domain.DayTransaction{
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Account:     account,
		Direction:   domain.DirectionOutflow,
	}
}

func TestCorrelateTransfers_MatchingPair(t *testing.T) {
	inflows := []domain.DayTransaction{inflow("Savings", "Transfer from Checking", 50)}
	outflows := []domain.DayTransaction{outflow("Checking", "Transfer to Savings", 50)}

	annotations := CorrelateTransfers(inflows, outflows)

	require.Len(t, annotations, 2)
	source := annotations["Checking"]
	assert.True(t, source.IsSource)
	assert.Equal(t, "Savings", source.Counterpart)
	assert.True(t, source.Amount.Equal(decimal.NewFromInt(50)))

	dest := annotations["Savings"]
	assert.False(t, dest.IsSource)
	assert.Equal(t, "Checking", dest.Counterpart)
}

func TestCorrelateTransfers_AmountMismatchNotCorrelated(t *testing.T) {
	inflows := []domain.DayTransaction{inflow("Savings", "Transfer in", 50.02)}
	outflows := []domain.DayTransaction{outflow("Checking", "Transfer out", 50)}

	assert.Empty(t, CorrelateTransfers(inflows, outflows))
}

func TestCorrelateTransfers_SubCentDifferenceMatches(t *testing.T) {
	inflows := []domain.DayTransaction{inflow("Savings", "Transfer in", 50.005)}
	outflows := []domain.DayTransaction{outflow("Checking", "Transfer out", 50)}

	assert.Len(t, CorrelateTransfers(inflows, outflows), 2)
}

func TestCorrelateTransfers_ExactCentDifferenceDoesNotMatch(t *testing.T) {
	inflows := []domain.DayTransaction{inflow("Savings", "Transfer in", 50.01)}
	outflows := []domain.DayTransaction{outflow("Checking", "Transfer out", 50)}

	assert.Empty(t, CorrelateTransfers(inflows, outflows))
}

func TestCorrelateTransfers_RequiresVocabularyOnBothLegs(t *testing.T) {
	outflows := []domain.DayTransaction{outflow("Checking", "Groceries", 50)}
	inflows := []domain.DayTransaction{inflow("Savings", "Transfer from Checking", 50)}
	assert.Empty(t, CorrelateTransfers(inflows, outflows))

	outflows = []domain.DayTransaction{outflow("Checking", "Credit card payment", 50)}
	inflows = []domain.DayTransaction{inflow("Credit Card", "Refund", 50)}
	assert.Empty(t, CorrelateTransfers(inflows, outflows))
}

func TestCorrelateTransfers_SameAccountNeverPairs(t *testing.T) {
	inflows := []domain.DayTransaction{inflow("Checking", "Transfer in", 50)}
	outflows := []domain.DayTransaction{outflow("Checking", "Transfer out", 50)}

	assert.Empty(t, CorrelateTransfers(inflows, outflows))
}

func TestCorrelateTransfers_GreedyFirstMatchWins(t *testing.T) {
	inflows := []domain.DayTransaction{
		inflow("Savings", "Transfer in", 100),
		inflow("Investment", "Transfer in", 100),
	}
	outflows := []domain.DayTransaction{outflow("Checking", "Transfer out", 100)}

	annotations := CorrelateTransfers(inflows, outflows)

	require.Len(t, annotations, 2)
	assert.Equal(t, "Savings", annotations["Checking"].Counterpart)
	_, investmentAnnotated := annotations["Investment"]
	assert.False(t, investmentAnnotated)
}

func TestCorrelateTransfers_EachInflowUsedOnce(t *testing.T) {
	inflows := []domain.DayTransaction{inflow("Savings", "Transfer in", 100)}
	outflows := []domain.DayTransaction{
		outflow("Checking", "Transfer out", 100),
		outflow("Investment", "Transfer out", 100),
	}

	annotations := CorrelateTransfers(inflows, outflows)

	require.Len(t, annotations, 2)
	assert.Equal(t, "Checking", annotations["Savings"].Counterpart)
	_, secondAnnotated := annotations["Investment"]
	assert.False(t, secondAnnotated)
}

func TestIsTransferLike(t *testing.T) {
	tests := []struct {
		description string
		want        bool
	}{
		{"Transfer to savings", true},
		{"TRANSFER FROM CHECKING", true},
		{"Credit card payment", true},
		{"xfer to brokerage", true},
		{"Pay off visa", true},
		{"Groceries", false},
		{"Salary", false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransferLike(tt.description))
		})
	}
}
