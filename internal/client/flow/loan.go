package flow

import (
	"context"
	"fmt"

	"github.com/trufund/trufund/internal/client/api"
	"github.com/trufund/trufund/internal/client/validate"
	"github.com/trufund/trufund/internal/common"
)

// Loan submits a loan request: validate, then one authenticated POST.
// The client holds no further state about the request; approval and
// repayment tracking live server-side.
type Loan struct {
	api        api.Client
	submitting bool
}

func NewLoan(apiClient api.Client) *Loan {
	return &Loan{api: apiClient}
}

// Submit validates in and sends it. A submission while one is in flight is
// refused; a failed submission is re-enterable.
func (f *Loan) Submit(ctx context.Context, in validate.LoanInput) (validate.FieldErrors, error) {
	if f.submitting {
		return nil, common.ErrAlreadySubmitting
	}

	if fe := validate.Loan(in); !fe.Valid() {
		return fe, nil
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	req := api.LoanRequest{
		Amount:      in.Amount,
		Incentive:   in.Incentive,
		Description: in.Description,
		EndDate:     in.EndDate,
	}
	if err := f.api.RequestLoan(ctx, req); err != nil {
		return nil, fmt.Errorf("loan request failed: %w", err)
	}
	return nil, nil
}
