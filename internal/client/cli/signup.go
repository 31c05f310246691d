package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trufund/trufund/internal/client/api"
	"github.com/trufund/trufund/internal/client/flow"
	"github.com/trufund/trufund/internal/common"
)

// SignUp walks the user through the three-step registration: the form, the
// emailed one-time code, and the final activation that yields a session.
//
// Field errors abort before any network call. A rejected code keeps the
// prompt open for a fresh one; "resend" requests a new code once the
// cooldown has elapsed and "cancel" abandons the registration. A successful
// finalize leaves the user logged in.
func (a *App) SignUp(ctx context.Context) error {
	s := flow.NewSignup(a.apiCli, a.sessions, a.sctx)

	form, confirm, err := a.readSignupForm()
	if err != nil {
		return err
	}

	fe, err := s.Submit(ctx, form, confirm)
	if err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err.Error())
		return err
	}
	if !fe.Valid() {
		a.printFieldErrors(fe)
		return nil
	}

	fmt.Fprintf(a.out, "A 6-digit code was sent to %s.\n", maskEmail(form.Email))

	for {
		code, err := getSimpleText(a.reader, "Enter code ('resend' for a new one, 'cancel' to abort)", a.out)
		if err != nil {
			return err
		}

		switch code {
		case "cancel":
			a.sctx.ClearPending()
			fmt.Fprintln(a.out, "Registration abandoned.")
			return nil

		case "resend":
			if wait := s.ResendWait(); wait > 0 {
				fmt.Fprintf(a.out, "Please wait %d seconds before requesting a new code.\n", int(wait/time.Second))
				continue
			}
			if s.Resend() {
				fmt.Fprintln(a.out, "A new code is on its way.")
			}
			continue
		}

		if err := s.Verify(ctx, code); err != nil {
			if errors.Is(err, flow.ErrOTPFormat) {
				fmt.Fprintln(a.out, "The code must be exactly 6 digits.")
			} else {
				fmt.Fprintln(a.out, "Verification failed, try again.")
			}
			continue
		}

		if err := s.Finalize(ctx); err != nil {
			// back in AwaitingOtp, the server may have discarded the code
			fmt.Fprintln(a.out, "Could not complete the registration:", err.Error())
			continue
		}

		fmt.Fprintln(a.out, "Welcome to TruFund! You are now logged in.")
		a.setMode(ModeOnline)
		return nil
	}
}

func (a *App) readSignupForm() (api.RegistrationForm, string, error) {
	var form api.RegistrationForm

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Choose a user ID", &form.UserID},
		{"Full name", &form.FullName},
		{"Email", &form.Email},
		{"Phone (optional)", &form.Phone},
		{"Address", &form.Address},
		{"Date of birth (DD/MM/YYYY)", &form.DOB},
		{"Aadhar number", &form.Aadhar},
	}

	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return form, "", err
		}
		*p.dst = v
	}

	password, err := getPassword("Choose a password", a.out)
	if err != nil {
		return form, "", err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return form, "", err
	}
	defer common.WipeByteArray(confirm)

	form.Password = string(password)
	return form, string(confirm), nil
}
