package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/trufund/trufund/internal/client/validate"
	"github.com/trufund/trufund/internal/common"
)

const loanDateLayout = "02/01/2006"

// RequestLoan prompts for the loan details and submits the request. Field
// errors are printed without any network call; a failed submission leaves
// the command re-runnable.
func (a *App) RequestLoan(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first.")
		return nil
	}

	in, err := a.readLoanInput()
	if err != nil {
		return err
	}

	fe, err := a.loans.Submit(ctx, in)
	if err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			fmt.Fprintln(a.out, "Your session has expired, please log in again.")
			return err
		}
		fmt.Fprintln(a.out, "Loan request failed:", err.Error())
		return err
	}
	if !fe.Valid() {
		a.printFieldErrors(fe)
		return nil
	}

	fmt.Fprintln(a.out, "Loan request submitted.")
	return nil
}

func (a *App) readLoanInput() (validate.LoanInput, error) {
	var in validate.LoanInput

	amount, err := getSimpleText(a.reader, "Loan amount", a.out)
	if err != nil {
		return in, err
	}
	// unparsable numbers become zero and fail validation with the
	// user-facing message instead of a parse error
	in.Amount, _ = strconv.ParseFloat(amount, 64)

	incentive, err := getSimpleText(a.reader, "Incentive offered (optional)", a.out)
	if err != nil {
		return in, err
	}
	if incentive != "" {
		in.Incentive, _ = strconv.ParseFloat(incentive, 64)
	}

	in.Description, err = getSimpleText(a.reader, "Purpose of the loan", a.out)
	if err != nil {
		return in, err
	}

	endDate, err := getSimpleText(a.reader, "Repayment date (DD/MM/YYYY)", a.out)
	if err != nil {
		return in, err
	}
	if endDate != "" {
		in.EndDate, _ = time.Parse(loanDateLayout, endDate)
	}

	terms, err := getSimpleText(a.reader, "Do you agree to the terms and conditions? (y/n)", a.out)
	if err != nil {
		return in, err
	}
	in.TermsAccepted = strings.EqualFold(terms, "y") || strings.EqualFold(terms, "yes")

	return in, nil
}
