package main

import (
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run simulated interviews",
}

var simulateBusinessCmd = &cobra.Command{
	Use:   "business <business-id>",
	Short: "Simulate interviews for every employee of a business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		simulator, dbs, err := newSimulator(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = dbs.Close() }()

		outcome, err := simulator.RunForBusiness(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}

		for _, employeeOutcome := range outcome.Outcomes {
			cmd.Printf("%s: %d answers, completed=%t\n",
				employeeOutcome.EmployeeEmail, len(employeeOutcome.Exchanges), employeeOutcome.Completed)
		}
		for _, failure := range outcome.Failures {
			cmd.Printf("%s: FAILED: %v\n", failure.EmployeeEmail, failure.Err)
		}
		return nil
	},
}

var simulateEmployeeCmd = &cobra.Command{
	Use:   "employee <employee-id> [interview-id]",
	Short: "Simulate a single employee's interview",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		simulator, dbs, err := newSimulator(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = dbs.Close() }()

		interviewID := ""
		if len(args) > 1 {
			interviewID = args[1]
		}
		outcome, err := simulator.RunForEmployee(cmd.Context(), args[0], interviewID)
		if err != nil {
			return err
		}

		cmd.Printf("interview %s, completed=%t\n", outcome.InterviewID, outcome.Completed)
		for _, exchange := range outcome.Exchanges {
			cmd.Printf("Q: %s\nA: %s\n\n", exchange.Question.Content, exchange.Answer)
		}
		return nil
	},
}
