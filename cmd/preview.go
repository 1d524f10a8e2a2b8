package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/ai"
	"github.com/spigell/staffmatch/internal/matching"
	"github.com/spigell/staffmatch/internal/staff"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the best projects for a candidate before adding them",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd.Flags(), map[string]string{"dataset": "dataset"})
	},
	Run: func(cmd *cobra.Command, _ []string) {
		preview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("dataset", "", "dataset file (default is generated data)")
	previewCmd.Flags().String("name", "", "candidate name")
	previewCmd.Flags().String("skills", "", `comma separated skills, e.g. "React, AWS"`)
	previewCmd.Flags().String("level", staff.Junior.String(), "candidate level: Junior, Mid or Senior")
	previewCmd.Flags().Bool("available", false, "candidate is available")
	previewCmd.Flags().String("resume", "", "resume file (pdf, image or text) to prefill the candidate from")
}

func preview(cmd *cobra.Command) {
	ctx := context.Background()
	l, config := setup()

	dataset, err := loadDataset(config.Dataset, l)
	if err != nil {
		l.Fatal("loading dataset", zap.Error(err))
	}

	candidate, err := candidateFromFlags(cmd)
	if err != nil {
		l.Fatal("reading candidate", zap.Error(err))
	}

	if path, _ := cmd.Flags().GetString("resume"); path != "" {
		candidate, err = applyResumeFile(ctx, path, candidate, newAssistant(ctx, config.AI, l))
		if err != nil {
			l.Fatal("reading resume", zap.String("filename", path), zap.Error(err))
		}
	}

	l.Info("candidate",
		zap.String("name", candidate.Name),
		zap.Strings("skills", candidate.Skills),
		zap.Stringer("level", candidate.Level),
		zap.Bool("available", candidate.Available),
	)

	suggestions := matching.Suggest(candidate, dataset.Projects, matching.PreviewSuggestions)
	if len(suggestions) == 0 {
		l.Info("no projects to suggest")
		return
	}

	for i, r := range suggestions {
		project := dataset.Projects.FindByID(r.ProjectID)
		l.Info("suggested project",
			zap.Int("rank", i+1),
			zap.String("project_id", r.ProjectID),
			zap.String("project_name", project.Name),
			zap.Int("total_score", r.TotalScore),
			zap.Strings("matched_skills", r.MatchedSkills),
		)
	}
}

func candidateFromFlags(cmd *cobra.Command) (staff.Employee, error) {
	name, _ := cmd.Flags().GetString("name")
	skills, _ := cmd.Flags().GetString("skills")
	levelName, _ := cmd.Flags().GetString("level")
	available, _ := cmd.Flags().GetBool("available")

	level, err := staff.ParseLevel(levelName)
	if err != nil {
		return staff.Employee{}, err
	}

	return staff.Employee{
		ID:        "preview",
		Name:      name,
		Skills:    staff.ParseSkills(skills),
		Level:     level,
		Available: available,
	}, nil
}

func applyResumeFile(ctx context.Context, path string, candidate staff.Employee, assistant *ai.Fallback) (staff.Employee, error) {
	doc, err := ai.DocumentFromFile(path)
	if err != nil {
		return candidate, err
	}

	profile := assistant.Resume(ctx, doc)
	if profile == nil {
		return candidate, errors.New("could not extract candidate details from the resume")
	}

	return ai.ApplyResume(candidate, profile), nil
}
