// Package cli drives the interactive terminal session: menus, input
// collection with validation retries, and result reporting. It owns all
// prompting and printing; the core never writes to the terminal.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/miniatm/pkg/domain/account"
	"github.com/amirasaad/miniatm/pkg/service"
	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"
)

// miniStatementLines is how many trailing log entries the mini-statement shows.
const miniStatementLines = 10

var (
	header  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
)

// Session is one interactive run of the ATM menu loop.
type Session struct {
	svc            *service.BankService
	in             *bufio.Reader
	out            io.Writer
	maxPINAttempts int
	validate       *validator.Validate

	// readSecret reads a PIN without echo when stdin is a terminal and
	// falls back to a plain line read otherwise (pipes, tests).
	readSecret func() (string, error)
}

// NewSession creates a session reading from in and writing to out.
func NewSession(svc *service.BankService, in io.Reader, out io.Writer, maxPINAttempts int) *Session {
	s := &Session{
		svc:            svc,
		in:             bufio.NewReader(in),
		out:            out,
		maxPINAttempts: maxPINAttempts,
		validate:       validator.New(),
	}
	s.readSecret = s.readLinePlain
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		s.readSecret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			return string(b), err
		}
	}
	return s
}

// Run drives the main menu until the user exits or input is exhausted.
func (s *Session) Run() error {
	for {
		header.Fprintln(s.out, "\n==== Welcome to MiniATM ====")
		fmt.Fprintln(s.out, "1) Create new account")
		fmt.Fprintln(s.out, "2) Login to account")
		fmt.Fprintln(s.out, "3) List accounts (brief)")
		fmt.Fprintln(s.out, "0) Exit")

		choice, err := s.readInt("Choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			if err := s.createAccountFlow(); err != nil {
				return err
			}
		case 2:
			if err := s.loginFlow(); err != nil {
				return err
			}
		case 3:
			s.listAccounts()
		case 0:
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			failure.Fprintln(s.out, "Invalid option. Try again.")
		}
	}
}

func (s *Session) createAccountFlow() error {
	header.Fprintln(s.out, "\n--- Create Account ---")
	name, err := s.readName("Full name: ")
	if err != nil {
		return err
	}
	pin, err := s.readPIN("Choose a 4-digit PIN: ")
	if err != nil {
		return err
	}

	a := s.svc.CreateAccount(name, pin)
	success.Fprintln(s.out, "Account created successfully!")
	fmt.Fprintf(s.out, "Your account number: %d\n", a.Number())
	return nil
}

func (s *Session) loginFlow() error {
	header.Fprintln(s.out, "\n--- Login ---")
	number, err := s.readInt64("Account number: ")
	if err != nil {
		return err
	}
	if !s.svc.Exists(number) {
		failure.Fprintln(s.out, "Account not found.")
		return nil
	}

	for attempt := 1; attempt <= s.maxPINAttempts; attempt++ {
		pin, err := s.readPIN("Enter PIN: ")
		if err != nil {
			return err
		}
		a, err := s.svc.Login(number, pin)
		if err == nil {
			success.Fprintf(s.out, "Login successful. Welcome, %s!\n", a.Name())
			return s.accountMenu(a)
		}
		if errors.Is(err, service.ErrInvalidPIN) {
			failure.Fprintf(s.out, "Incorrect PIN. Attempts left: %d\n", s.maxPINAttempts-attempt)
			continue
		}
		failure.Fprintln(s.out, "Account not found.")
		return nil
	}
	failure.Fprintln(s.out, "Too many incorrect attempts. Returning to main menu.")
	return nil
}

func (s *Session) accountMenu(a *account.Account) error {
	for {
		header.Fprintf(s.out, "\n--- Account Menu for A/C %d ---\n", a.Number())
		fmt.Fprintln(s.out, "1) Check balance")
		fmt.Fprintln(s.out, "2) Deposit")
		fmt.Fprintln(s.out, "3) Withdraw")
		fmt.Fprintln(s.out, "4) Transfer")
		fmt.Fprintln(s.out, "5) Mini-statement")
		fmt.Fprintln(s.out, "6) Change PIN")
		fmt.Fprintln(s.out, "0) Logout")

		choice, err := s.readInt("Choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			balance, err := s.svc.Balance(a.Number())
			if err != nil {
				s.reportFailure(err)
				continue
			}
			fmt.Fprintf(s.out, "Current balance: %s\n", balance)
		case 2:
			if err := s.depositFlow(a); err != nil {
				return err
			}
		case 3:
			if err := s.withdrawFlow(a); err != nil {
				return err
			}
		case 4:
			if err := s.transferFlow(a); err != nil {
				return err
			}
		case 5:
			s.miniStatement(a)
		case 6:
			if err := s.changePINFlow(a); err != nil {
				return err
			}
		case 0:
			fmt.Fprintln(s.out, "Logged out.")
			return nil
		default:
			failure.Fprintln(s.out, "Invalid choice.")
		}
	}
}

func (s *Session) depositFlow(a *account.Account) error {
	amount, err := s.readAmount("Amount to deposit: ")
	if err != nil {
		return err
	}
	if err := s.svc.Deposit(a.Number(), amount); err != nil {
		s.reportFailure(err)
		return nil
	}
	success.Fprintf(s.out, "Deposited %s. New balance: %s\n", amount, a.Balance())
	return nil
}

func (s *Session) withdrawFlow(a *account.Account) error {
	amount, err := s.readAmount("Amount to withdraw: ")
	if err != nil {
		return err
	}
	if err := s.svc.Withdraw(a.Number(), amount); err != nil {
		s.reportFailure(err)
		return nil
	}
	success.Fprintf(s.out, "Withdrawn %s. New balance: %s\n", amount, a.Balance())
	return nil
}

func (s *Session) transferFlow(a *account.Account) error {
	to, err := s.readInt64("Transfer to account number: ")
	if err != nil {
		return err
	}
	amount, err := s.readAmount("Amount to transfer: ")
	if err != nil {
		return err
	}
	if err := s.svc.Transfer(a.Number(), to, amount); err != nil {
		s.reportFailure(err)
		return nil
	}
	success.Fprintf(s.out, "Transferred %s to %d. Your balance: %s\n", amount, to, a.Balance())
	return nil
}

func (s *Session) changePINFlow(a *account.Account) error {
	pin, err := s.readPIN("Enter new 4-digit PIN: ")
	if err != nil {
		return err
	}
	if err := s.svc.ChangePIN(a.Number(), pin); err != nil {
		s.reportFailure(err)
		return nil
	}
	success.Fprintln(s.out, "PIN changed successfully.")
	return nil
}

func (s *Session) miniStatement(a *account.Account) {
	header.Fprintln(s.out, "\n--- Mini Statement ---")
	tx, err := s.svc.Transactions(a.Number())
	if err != nil {
		s.reportFailure(err)
		return
	}
	if len(tx) == 0 {
		fmt.Fprintln(s.out, "No transactions.")
		return
	}
	start := 0
	if len(tx) > miniStatementLines {
		start = len(tx) - miniStatementLines
	}
	for _, entry := range tx[start:] {
		fmt.Fprintln(s.out, entry)
	}
}

func (s *Session) listAccounts() {
	header.Fprintln(s.out, "\n--- All Accounts (brief) ---")
	all := s.svc.ListAccounts()
	if len(all) == 0 {
		fmt.Fprintln(s.out, "No accounts created yet.")
		return
	}
	for _, a := range all {
		fmt.Fprintln(s.out, a)
	}
}

func (s *Session) reportFailure(err error) {
	failure.Fprintf(s.out, "Operation failed: %v\n", err)
}
