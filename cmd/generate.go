package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic dataset of employees and projects",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "staffmatch-dataset.json", "file to write the dataset to")
	generateCmd.Flags().Int("employees", generator.DefaultEmployees, "number of employees to generate")
	generateCmd.Flags().Int("projects", generator.DefaultProjects, "number of projects to generate")
	generateCmd.Flags().Int64("seed", 0, "random seed, 0 picks a random one")
}

func generate(cmd *cobra.Command) {
	logger, _ := setup()

	output, _ := cmd.Flags().GetString("output")
	employees, _ := cmd.Flags().GetInt("employees")
	projects, _ := cmd.Flags().GetInt("projects")
	seed, _ := cmd.Flags().GetInt64("seed")

	if employees < 0 || projects < 0 {
		logger.Fatal("counts must not be negative", zap.Int("employees", employees), zap.Int("projects", projects))
	}

	dataset := generator.NewSeeded(seed).Dataset(employees, projects)

	if err := dataset.ToFile(output); err != nil {
		logger.Fatal("writing dataset", zap.Error(err))
	}

	logger.Info("dataset generated",
		zap.String("filename", output),
		zap.Int("employees", dataset.Employees.Len()),
		zap.Int("projects", dataset.Projects.Len()),
		zap.Int("available", dataset.Employees.AvailableCount()),
	)
}
