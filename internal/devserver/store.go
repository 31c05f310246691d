package devserver

import (
	"errors"
	"sync"
	"time"
)

var (
	errDuplicateUser = errors.New("user already exists")
	errUserNotFound  = errors.New("user not found")
)

// user is an account held in memory for the lifetime of the process.
type user struct {
	ID           string
	FullName     string
	Email        string
	Phone        string
	Address      string
	DOB          string
	Aadhar       string
	PasswordHash []byte

	OTP           string
	OTPIssuedAt   time.Time
	EmailVerified bool
	Activated     bool
}

// loanRequest is a stored loan submission.
type loanRequest struct {
	UserID      string
	Amount      float64
	Incentive   float64
	Description string
	EndDate     time.Time
	ReceivedAt  time.Time
}

// memStore holds users and loan requests in memory. Everything is lost on
// restart, which is the point of a development server.
type memStore struct {
	mu    sync.Mutex
	users map[string]*user // keyed by user ID
	loans []loanRequest
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*user)}
}

func (s *memStore) createUser(u *user) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; ok {
		return errDuplicateUser
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return errDuplicateUser
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *memStore) byID(id string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	return u, nil
}

// byIdentifier looks a user up by ID or email, for login.
func (s *memStore) byIdentifier(identifier string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[identifier]; ok {
		return u, nil
	}
	for _, u := range s.users {
		if u.Email == identifier {
			return u, nil
		}
	}
	return nil, errUserNotFound
}

// verifyEmail checks the code for the account behind email and marks it
// verified. A used or expired code is rejected; a verified code is consumed.
func (s *memStore) verifyEmail(email, otp string, maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email != email {
			continue
		}
		if u.OTP == "" || u.OTP != otp || time.Since(u.OTPIssuedAt) > maxAge {
			return errUserNotFound
		}
		u.EmailVerified = true
		u.OTP = ""
		return nil
	}
	return errUserNotFound
}

// activate marks a verified account as activated. It fails when the email
// has not been verified yet.
func (s *memStore) activate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return errUserNotFound
	}
	if !u.EmailVerified {
		return errUserNotFound
	}
	u.Activated = true
	return nil
}

func (s *memStore) addLoan(l loanRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans = append(s.loans, l)
}

func (s *memStore) loanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loans)
}
