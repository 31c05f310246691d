package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trufund/trufund/internal/client/validate"
	"github.com/trufund/trufund/internal/common"
)

func TestLoan_InvalidInput_NoNetworkCall(t *testing.T) {
	f := &fakeAPI{}
	l := NewLoan(f)

	fe, err := l.Submit(context.Background(), validate.LoanInput{Amount: 0, Description: "", TermsAccepted: false})
	require.NoError(t, err)
	assert.Contains(t, fe, validate.FieldAmount)
	assert.Contains(t, fe, validate.FieldDescription)
	assert.Contains(t, fe, validate.FieldTerms)
	assert.Equal(t, 0, f.loanCalls)
}

func TestLoan_Submit_MapsFields(t *testing.T) {
	f := &fakeAPI{}
	l := NewLoan(f)

	end := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	fe, err := l.Submit(context.Background(), validate.LoanInput{
		Amount: 500, Incentive: 25, Description: "laptop", EndDate: end, TermsAccepted: true,
	})
	require.NoError(t, err)
	require.Empty(t, fe)

	assert.Equal(t, float64(500), f.lastLoan.Amount)
	assert.Equal(t, float64(25), f.lastLoan.Incentive)
	assert.Equal(t, "laptop", f.lastLoan.Description)
	assert.Equal(t, end, f.lastLoan.EndDate)
}

func TestLoan_FailureIsReenterable(t *testing.T) {
	f := &fakeAPI{loanErr: errors.New("boom")}
	l := NewLoan(f)

	in := validate.LoanInput{Amount: 100, Description: "x", TermsAccepted: true}

	_, err := l.Submit(context.Background(), in)
	require.Error(t, err)

	f.loanErr = nil
	fe, err := l.Submit(context.Background(), in)
	require.NoError(t, err)
	require.Empty(t, fe)
	assert.Equal(t, 2, f.loanCalls)
}

func TestLoan_DoubleSubmitGuard(t *testing.T) {
	f := &fakeAPI{}
	l := NewLoan(f)

	in := validate.LoanInput{Amount: 100, Description: "x", TermsAccepted: true}

	var reentrant error
	f.loanHook = func() {
		_, reentrant = l.Submit(context.Background(), in)
	}

	_, err := l.Submit(context.Background(), in)
	require.NoError(t, err)
	require.ErrorIs(t, reentrant, common.ErrAlreadySubmitting)
	assert.Equal(t, 1, f.loanCalls)
}
