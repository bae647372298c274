package main

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/internal/repositories"
	"github.com/myrjola/deepinsight/sqlite"
	"github.com/spf13/cobra"
)

var seedQuestions = []string{
	"Tell me about your professional background and experience.",
	"What are your greatest strengths as a team member?",
	"Describe a challenging situation you handled recently.",
}

var seedEmployees = []models.Employee{
	{
		Email: "john.doe@example.com",
		Bio: "Senior software engineer with 5 years of experience in full-stack development. " +
			"Specializes in Go, React, and cloud infrastructure. Mentors junior developers.",
	},
	{
		Email: "maria.garcia@example.com",
		Bio: "Product manager who joined from the customer support team. " +
			"Deep knowledge of the onboarding flow and the reasons customers churn.",
	},
}

// seedCmd creates a demo business with base questions and employees so that
// simulations have something to chew on.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo business with base questions and employees",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()
		dbs, err := sqlite.NewDatabase(cmd.Context(), dbURL)
		if err != nil {
			return err
		}
		defer func() { _ = dbs.Close() }()

		ctx := cmd.Context()
		businesses := repositories.NewBusinessRepository(dbs, logger)
		employees := repositories.NewEmployeeRepository(dbs, logger)
		questions := repositories.NewQuestionRepository(dbs, logger)

		business := models.Business{ID: uuid.NewString(), Name: "Demo Company"}
		if err = businesses.Create(ctx, business); err != nil {
			return err
		}

		for i, content := range seedQuestions {
			if err = questions.Create(ctx, models.Question{
				ID:         uuid.NewString(),
				Content:    content,
				BusinessID: business.ID,
				OrderIndex: sql.NullInt64{Int64: int64(i * models.BaseQuestionStride), Valid: true},
			}); err != nil {
				return err
			}
		}

		for _, employee := range seedEmployees {
			employee.ID = uuid.NewString()
			employee.BusinessID = business.ID
			if err = employees.Create(ctx, employee); err != nil {
				return err
			}
			cmd.Printf("employee %s: %s\n", employee.Email, employee.ID)
		}

		cmd.Printf("business %s: %s\n", business.Name, business.ID)
		return nil
	},
}
