package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
)

// Prompter reads validated values from an input stream, re-prompting until
// the value parses. It owns every retry loop so the core services only ever
// see typed, validated inputs.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter reading from in and echoing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// readLine reads one trimmed line. io.EOF ends the session.
func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// PromptInt reads an integer, re-prompting on bad input.
func (p *Prompter) PromptInt(prompt string) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		value, convErr := strconv.Atoi(line)
		if convErr != nil {
			fmt.Fprintln(p.out, "Please enter a valid whole number.")
			continue
		}
		return value, nil
	}
}

// PromptIntRange reads an integer within [min, max], re-prompting until it
// fits.
func (p *Prompter) PromptIntRange(prompt string, min, max int) (int, error) {
	for {
		value, err := p.PromptInt(prompt)
		if err != nil {
			return 0, err
		}
		if value < min || value > max {
			fmt.Fprintf(p.out, "The value must be between %d and %d.\n", min, max)
			continue
		}
		return value, nil
	}
}

// PromptName reads an alphabetic string of at most the allowed name length.
func (p *Prompter) PromptName(prompt string) (string, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		if !entities.ValidName(line) {
			fmt.Fprintf(p.out, "Names must be alphabetic and at most %d characters.\n", entities.MaxNameLength)
			continue
		}
		return line, nil
	}
}

// PromptProvider reads an insurance provider valid for the given age:
// patients aged 60 or older may only pick PAMI, younger patients anything
// but PAMI.
func (p *Prompter) PromptProvider(age int) (entities.InsuranceProvider, error) {
	options := make([]string, 0, len(entities.Providers()))
	for _, provider := range entities.Providers() {
		options = append(options, string(provider))
	}
	prompt := fmt.Sprintf("Enter insurance provider (%s): ", strings.Join(options, ", "))

	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		provider := entities.InsuranceProvider(line)
		if !provider.Valid() {
			fmt.Fprintln(p.out, "Unknown insurance provider.")
			continue
		}
		if !provider.ValidForAge(age) {
			if provider == entities.ProviderPAMI {
				fmt.Fprintln(p.out, "PAMI is only available to patients aged 60 or older.")
			} else {
				fmt.Fprintln(p.out, "Patients aged 60 or older must use PAMI.")
			}
			continue
		}
		return provider, nil
	}
}

// PromptLine reads one raw trimmed line.
func (p *Prompter) PromptLine(prompt string) (string, error) {
	return p.readLine(prompt)
}
