package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

var (
	errEndOfInput   = errors.New("end of input")
	errInvalidInput = errors.New("invalid input")
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// prompter reads answers line by line. Passwords are read without echo when
// the input is a terminal.
type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
	fd  int // -1 unless input is a terminal
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &prompter{sc: bufio.NewScanner(in), out: out, fd: fd}
}

// ask prints label and returns the trimmed answer, which may be blank.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", errEndOfInput
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

// require is ask for answers that may not be blank.
func (p *prompter) require(label string) (string, error) {
	s, err := p.ask(label)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%w: %s is required", errInvalidInput, strings.TrimSuffix(strings.TrimSpace(label), ":"))
	}
	return s, nil
}

// optional returns nil for a blank answer.
func (p *prompter) optional(label string) (*string, error) {
	return optionalValue(p, label, func(s string) (string, error) { return s, nil })
}

func (p *prompter) askID(label string) (int64, error) {
	return requiredValue(p, label, parseID)
}

func (p *prompter) askInt(label string) (int, error) {
	return requiredValue(p, label, strconv.Atoi)
}

func (p *prompter) askFloat(label string) (float64, error) {
	return requiredValue(p, label, parseFloat)
}

func (p *prompter) optionalID(label string) (*int64, error) {
	return optionalValue(p, label, parseID)
}

func (p *prompter) optionalInt(label string) (*int, error) {
	return optionalValue(p, label, strconv.Atoi)
}

func (p *prompter) optionalFloat(label string) (*float64, error) {
	return optionalValue(p, label, parseFloat)
}

func (p *prompter) optionalDate(label string) (*time.Time, error) {
	return optionalValue(p, label, parseDate)
}

func (p *prompter) optionalDateTime(label string) (*time.Time, error) {
	return optionalValue(p, label, parseDateTime)
}

// optionalBool accepts y/yes/s/si and n/no.
func (p *prompter) optionalBool(label string) (*bool, error) {
	return optionalValue(p, label, parseBool)
}

// confirm is true only for an explicit yes.
func (p *prompter) confirm(label string) (bool, error) {
	s, err := p.ask(label)
	if err != nil {
		return false, err
	}
	yes, err := parseBool(s)
	return err == nil && yes, nil
}

// password reads a secret. On a terminal the input is masked.
func (p *prompter) password(label string) (string, error) {
	if p.fd < 0 {
		return p.ask(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func requiredValue[T any](p *prompter, label string, parse func(string) (T, error)) (T, error) {
	var zero T
	s, err := p.require(label)
	if err != nil {
		return zero, err
	}
	v, err := parse(s)
	if err != nil {
		return zero, fmt.Errorf("%w %q", errInvalidInput, s)
	}
	return v, nil
}

func optionalValue[T any](p *prompter, label string, parse func(string) (T, error)) (*T, error) {
	s, err := p.ask(label)
	if err != nil || s == "" {
		return nil, err
	}
	v, err := parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q", errInvalidInput, s)
	}
	return &v, nil
}

func parseID(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func parseDate(s string) (time.Time, error) { return time.ParseInLocation(dateLayout, s, time.Local) }

func parseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return parseDate(s)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "s", "si", "sí", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a yes/no answer: %q", s)
}

// coerce turns a filter value typed on the command line into an integer when
// it looks like one, so numeric columns compare as numbers.
func coerce(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}
