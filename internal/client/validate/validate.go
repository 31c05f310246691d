// Package validate implements the client-side form checks that gate
// submission. All fields of a form are validated together so the user sees
// every problem at once; any failing field blocks the network call.
package validate

import (
	"regexp"
	"strings"
	"time"

	"github.com/trufund/trufund/internal/client/api"
)

// FieldErrors maps a field name to its user-facing message. An empty map
// means the form may be submitted.
type FieldErrors map[string]string

func (fe FieldErrors) Valid() bool { return len(fe) == 0 }

// Field names used as FieldErrors keys.
const (
	FieldUserID          = "userid"
	FieldFullName        = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldPhone           = "phone"
	FieldAadhar          = "aadhar"
	FieldDOB             = "dob"
	FieldAddress         = "address"
	FieldAmount          = "amount"
	FieldDescription     = "description"
	FieldTerms           = "terms"
)

const (
	minPasswordLen = 6
	dobLayout      = "02/01/2006"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^\d{10}$`)
	aadharRe = regexp.MustCompile(`^\d{12}$`)
)

// SignUp checks the registration form plus the password confirmation.
func SignUp(form api.RegistrationForm, confirmPassword string) FieldErrors {
	fe := FieldErrors{}

	if strings.TrimSpace(form.UserID) == "" {
		fe[FieldUserID] = "User ID is required"
	}

	if strings.TrimSpace(form.FullName) == "" {
		fe[FieldFullName] = "Full name is required"
	}

	if strings.TrimSpace(form.Email) == "" {
		fe[FieldEmail] = "Email is required"
	} else if !emailRe.MatchString(form.Email) {
		fe[FieldEmail] = "Please enter a valid email"
	}

	if strings.TrimSpace(form.Password) == "" {
		fe[FieldPassword] = "Password is required"
	} else if len(form.Password) < minPasswordLen {
		fe[FieldPassword] = "Password must be at least 6 characters"
	}

	if strings.TrimSpace(confirmPassword) == "" {
		fe[FieldConfirmPassword] = "Please confirm your password"
	} else if confirmPassword != form.Password {
		fe[FieldConfirmPassword] = "Passwords do not match"
	}

	// Phone is optional but must be well-formed when present.
	if strings.TrimSpace(form.Phone) != "" && !phoneRe.MatchString(form.Phone) {
		fe[FieldPhone] = "Please enter a valid 10-digit phone number"
	}

	if strings.TrimSpace(form.Aadhar) == "" {
		fe[FieldAadhar] = "Aadhar number is required"
	} else if !aadharRe.MatchString(form.Aadhar) {
		fe[FieldAadhar] = "Enter a valid 12-digit Aadhar number"
	}

	if strings.TrimSpace(form.DOB) == "" {
		fe[FieldDOB] = "Date of birth is required"
	} else if _, err := time.Parse(dobLayout, form.DOB); err != nil {
		fe[FieldDOB] = "Enter date of birth as DD/MM/YYYY"
	}

	if strings.TrimSpace(form.Address) == "" {
		fe[FieldAddress] = "Address is required"
	}

	return fe
}

// Login checks the credential form. The email-format rule is off by
// default, matching the product; strictEmail turns it on.
func Login(identifier, password string, strictEmail bool) FieldErrors {
	fe := FieldErrors{}

	if strictEmail {
		if strings.TrimSpace(identifier) == "" {
			fe[FieldEmail] = "Email is required"
		} else if !emailRe.MatchString(identifier) {
			fe[FieldEmail] = "Please enter a valid email"
		}
	}

	if strings.TrimSpace(password) == "" {
		fe[FieldPassword] = "Password is required"
	} else if len(password) < minPasswordLen {
		fe[FieldPassword] = "Password must be at least 6 characters"
	}

	return fe
}

// LoanInput is the user's loan request before it is sent.
type LoanInput struct {
	Amount        float64
	Incentive     float64
	Description   string
	EndDate       time.Time
	TermsAccepted bool
}

// Loan checks a loan request form.
func Loan(in LoanInput) FieldErrors {
	fe := FieldErrors{}

	if in.Amount <= 0 {
		fe[FieldAmount] = "Please enter a valid loan amount"
	}
	if strings.TrimSpace(in.Description) == "" {
		fe[FieldDescription] = "Please enter the purpose of the loan"
	}
	if !in.TermsAccepted {
		fe[FieldTerms] = "Please agree to the terms and conditions before submitting"
	}

	return fe
}

// OTP reports whether code is exactly six decimal digits; anything else is
// rejected locally before the verify call is attempted.
func OTP(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
