package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amirasaad/miniatm/pkg/money"
)

// readLinePlain reads one line from the session input, trimmed.
func (s *Session) readLinePlain() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readLine prompts and reads one trimmed line.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	return s.readLinePlain()
}

// readInt prompts until the user enters a valid integer.
func (s *Session) readInt(prompt string) (int, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			failure.Fprintln(s.out, "Please enter a valid integer.")
			continue
		}
		return n, nil
	}
}

// readInt64 prompts until the user enters a valid account number.
func (s *Session) readInt64(prompt string) (int64, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			failure.Fprintln(s.out, "Please enter a valid number.")
			continue
		}
		return n, nil
	}
}

// readAmount prompts until the user enters a parseable monetary amount.
// Positivity is enforced by the domain, not here.
func (s *Session) readAmount(prompt string) (money.Money, error) {
	for {
		line, err := s.readLine(prompt + money.Symbol)
		if err != nil {
			return money.Zero(), err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err != nil {
			failure.Fprintln(s.out, "Please enter a valid amount (e.g., 2500.50).")
			continue
		}
		amount, err := money.New(f)
		if err != nil {
			failure.Fprintln(s.out, "Please enter a valid amount (e.g., 2500.50).")
			continue
		}
		return amount, nil
	}
}

// readName prompts until the user enters a non-empty name.
func (s *Session) readName(prompt string) (string, error) {
	for {
		name, err := s.readLine(prompt)
		if err != nil {
			return "", err
		}
		if name == "" {
			failure.Fprintln(s.out, "Name must not be empty.")
			continue
		}
		return name, nil
	}
}

// readPIN prompts until the user enters a 4-digit numeric PIN, reading
// without echo when the input is a terminal.
func (s *Session) readPIN(prompt string) (string, error) {
	for {
		fmt.Fprint(s.out, prompt)
		pin, err := s.readSecret()
		if err != nil {
			return "", err
		}
		pin = strings.TrimSpace(pin)
		if err := s.validate.Var(pin, "len=4,number"); err != nil {
			failure.Fprintln(s.out, "PIN must be 4 digits.")
			continue
		}
		return pin, nil
	}
}
