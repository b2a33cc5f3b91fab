package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/clinicdesk/clinic-ledger/internal/application/services"
	"github.com/clinicdesk/clinic-ledger/internal/domain/entities"
	apperrors "github.com/clinicdesk/clinic-ledger/pkg/errors"
)

// Shell is the interactive console menu. It collects validated inputs,
// calls the ledger and prints results; the core never writes to the
// console itself.
type Shell struct {
	ledger     *services.LedgerService
	treatBatch int
	prompter   *Prompter
	out        io.Writer
}

// New creates a shell over the ledger.
func New(ledger *services.LedgerService, treatBatch int, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		ledger:     ledger,
		treatBatch: treatBatch,
		prompter:   NewPrompter(in, out),
		out:        out,
	}
}

// Run drives the menu loop until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "%s\n\n", s.ledger.ClinicName())

	for {
		s.printMenu()
		option, err := s.prompter.PromptIntRange("Select an option: ", 1, 9)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch option {
		case 1:
			err = s.registerPatient(ctx)
		case 2:
			err = s.bookAppointment(ctx)
		case 3:
			err = s.sortAppointments(ctx)
		case 4:
			s.showWaitingList(ctx)
		case 5:
			s.treatPatients(ctx)
		case 6:
			s.collectPayments(ctx)
		case 7:
			s.closeTill(ctx)
		case 8:
			s.showReport(ctx)
		case 9:
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "Menu:")
	fmt.Fprintln(s.out, "1. Register patient")
	fmt.Fprintln(s.out, "2. Book appointment")
	fmt.Fprintln(s.out, "3. Sort appointments")
	fmt.Fprintln(s.out, "4. Show waiting list")
	fmt.Fprintln(s.out, "5. Treat patients")
	fmt.Fprintln(s.out, "6. Collect payments")
	fmt.Fprintln(s.out, "7. Close till")
	fmt.Fprintln(s.out, "8. Show report")
	fmt.Fprintln(s.out, "9. Exit")
}

func (s *Shell) registerPatient(ctx context.Context) error {
	firstName, err := s.prompter.PromptName("Enter first name: ")
	if err != nil {
		return err
	}
	lastName, err := s.prompter.PromptName("Enter last name: ")
	if err != nil {
		return err
	}
	nationalID, err := s.prompter.PromptInt("Enter national id: ")
	if err != nil {
		return err
	}
	age, err := s.prompter.PromptIntRange("Enter age: ", entities.MinPatientAge, entities.MaxPatientAge)
	if err != nil {
		return err
	}
	provider, err := s.prompter.PromptProvider(age)
	if err != nil {
		return err
	}

	patient, err := s.ledger.RegisterPatient(ctx, firstName, lastName, nationalID, age, provider)
	if err != nil {
		s.printError(err)
		return nil
	}
	fmt.Fprintf(s.out, "Patient %s %s registered with id %d.\n", patient.FirstName, patient.LastName, patient.ID)
	return nil
}

func (s *Shell) bookAppointment(ctx context.Context) error {
	patientID, err := s.prompter.PromptInt("Enter patient id: ")
	if err != nil {
		return err
	}
	specialty, err := s.prompter.PromptLine("Enter specialty: ")
	if err != nil {
		return err
	}

	appointment, err := s.ledger.BookAppointment(ctx, patientID, entities.Specialty(specialty))
	if err != nil {
		s.printError(err)
		return nil
	}
	fmt.Fprintf(s.out, "Appointment for %s booked, amount due $%.2f.\n", appointment.Specialty, appointment.AmountDue)
	return nil
}

func (s *Shell) sortAppointments(ctx context.Context) error {
	choice, err := s.prompter.PromptIntRange("Sort by (1: provider, 2: amount descending): ", 1, 2)
	if err != nil {
		return err
	}

	criterion := entities.SortByProvider
	if choice == 2 {
		criterion = entities.SortByAmountDescending
	}
	if err := s.ledger.SortAppointments(ctx, criterion); err != nil {
		s.printError(err)
		return nil
	}
	fmt.Fprintln(s.out, "Appointments sorted.")
	return nil
}

func (s *Shell) showWaitingList(ctx context.Context) {
	entries := s.ledger.WaitingList(ctx)
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No patients waiting.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "Patient: %s %s, national id: %d, specialty: %s\n",
			e.Patient.FirstName, e.Patient.LastName, e.Patient.NationalID, e.Appointment.Specialty)
	}
}

func (s *Shell) treatPatients(ctx context.Context) {
	treated := s.ledger.TreatNext(ctx, s.treatBatch)
	if len(treated) == 0 {
		fmt.Fprintln(s.out, "No patients waiting.")
		return
	}
	fmt.Fprintf(s.out, "Treated %d patient(s).\n", len(treated))
}

func (s *Shell) collectPayments(ctx context.Context) {
	collected := s.ledger.CollectPayments(ctx)
	fmt.Fprintf(s.out, "Collected $%.2f.\n", collected)
}

func (s *Shell) closeTill(ctx context.Context) {
	total, err := s.ledger.CloseTill(ctx)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "Till closed. Total collected: $%.2f\n", total)
}

func (s *Shell) showReport(ctx context.Context) {
	specialty, err := s.ledger.LeastRequestedSpecialty(ctx)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "Least requested specialty: %s\n", specialty)
}

// printError shows the user-facing message of a core error.
func (s *Shell) printError(err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintf(s.out, "Error: %s.\n", strings.TrimSuffix(appErr.Message, "."))
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}
