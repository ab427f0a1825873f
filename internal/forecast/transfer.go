package forecast

import (
	"strings"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// transferKeywords is the vocabulary a description must contain (case
// insensitive) for a credit/debit pair to be considered a transfer.
var transferKeywords = []string{"transfer", "payment", "xfer", "pay off"}

// transferTolerance is the maximum amount mismatch between the two legs.
// The comparison is strict: a difference of exactly one cent does not match.
var transferTolerance = decimal.New(1, -2)

// IsTransferLike reports whether a description matches the transfer/payment
// vocabulary.
func IsTransferLike(description string) bool {
	lowered := strings.ToLower(description)
	for _, kw := range transferKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// CorrelateTransfers pairs same-day outflows with inflows that look like the
// other leg of a transfer: different accounts, amounts within the tolerance,
// both descriptions transfer-like. Matching is greedy in input order - the
// first qualifying inflow wins and each leg participates in at most one
// pair. The result maps account name to its annotation.
func CorrelateTransfers(inflows, outflows []domain.DayTransaction) map[string]domain.TransferAnnotation {
	if len(inflows) == 0 || len(outflows) == 0 {
		return nil
	}

	var annotations map[string]domain.TransferAnnotation
	used := make([]bool, len(inflows))

	for _, out := range outflows {
		if !IsTransferLike(out.Description) {
			continue
		}
		for j, in := range inflows {
			if used[j] || in.Account == out.Account {
				continue
			}
			if !IsTransferLike(in.Description) {
				continue
			}
			if out.Amount.Sub(in.Amount).Abs().GreaterThanOrEqual(transferTolerance) {
				continue
			}

			used[j] = true
			if annotations == nil {
				annotations = make(map[string]domain.TransferAnnotation)
			}
			annotations[out.Account] = domain.TransferAnnotation{
				IsSource:    true,
				Counterpart: in.Account,
				Amount:      out.Amount,
			}
			annotations[in.Account] = domain.TransferAnnotation{
				IsSource:    false,
				Counterpart: out.Account,
				Amount:      in.Amount,
			}
			break
		}
	}

	return annotations
}
