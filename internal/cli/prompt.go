package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"healthpoints/internal/domain"
)

const timestampLayout = "2006-01-02 15:04"

// prompter reads form fields one line at a time. An empty answer keeps the
// value shown in brackets.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) text(label, def string) (string, error) {
	fmt.Fprintf(p.w, "%s [%s]: ", label, def)
	s, err := readLine(p.r)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

func (p *prompter) int(label string, def int) (int, error) {
	s, err := p.text(label, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", domain.ErrValidation, label)
	}
	return n, nil
}

func (p *prompter) float(label string, def float64) (float64, error) {
	s, err := p.text(label, strconv.FormatFloat(def, 'f', -1, 64))
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, label)
	}
	return f, nil
}

func (p *prompter) date(label string, def domain.Date) (domain.Date, error) {
	s, err := p.text(label+" (YYYY-MM-DD)", def.String())
	if err != nil {
		return domain.Date{}, err
	}
	if s == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return d, nil
}

// timestamp accepts "YYYY-MM-DD HH:MM" in UTC or an RFC 3339 instant.
func (p *prompter) timestamp(label string, def domain.Timestamp) (domain.Timestamp, error) {
	shown := ""
	if !def.IsZero() {
		shown = def.Time().Format(timestampLayout)
	}
	s, err := p.text(label+" (YYYY-MM-DD HH:MM UTC)", shown)
	if err != nil {
		return domain.Timestamp{}, err
	}
	if s == "" {
		return domain.Timestamp{}, nil
	}
	if t, err := time.ParseInLocation(timestampLayout, s, time.UTC); err == nil {
		return domain.TimestampOf(t), nil
	}
	ts, err := domain.ParseTimestamp(s)
	if err != nil {
		return domain.Timestamp{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return ts, nil
}

func (p *prompter) units(label string, def domain.Units) (domain.Units, error) {
	s, err := p.text(label+" (kg|lb)", string(def))
	if err != nil {
		return "", err
	}
	return domain.Units(strings.ToLower(s)), nil
}

func (p *prompter) confirm(label string) (bool, error) {
	fmt.Fprintf(p.w, "%s [y/N]: ", label)
	s, err := readLine(p.r)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
