package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/ai"
	"github.com/spigell/staffmatch/internal/export"
	"github.com/spigell/staffmatch/internal/filtering"
	"github.com/spigell/staffmatch/internal/logger"
	"github.com/spigell/staffmatch/internal/matching"
	"github.com/spigell/staffmatch/internal/staff"
)

const (
	PromptExportCSV   = "Export CSV"
	PromptReport      = "AI report"
	PromptShowAll     = "Show full ranking"
	PromptResultsFile = "Dump results to file"
	PromptOtherProj   = "Choose another project"
	PromptExit        = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptExportCSV, PromptReport, PromptShowAll, PromptResultsFile, PromptOtherProj, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank employees for a project",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"dataset":                 "dataset",
			"matching.available-only": "available-only",
			"matching.min-score":      "min-score",
			"matching.limit":          "limit",
		})
	},
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("dataset", "", "dataset file (default is generated data)")
	matchCmd.Flags().StringP("project", "p", "", "project id to rank for (default is an interactive choice)")
	matchCmd.Flags().Bool("all", false, "rank every project")
	matchCmd.Flags().BoolP("auto-approve", "y", false, "do not show the interactive menu")
	matchCmd.Flags().Bool("available-only", false, "show available employees only")
	matchCmd.Flags().Int("min-score", 0, "hide results below this total score")
	matchCmd.Flags().Int("limit", matching.DisplayLimit, "number of results to show, 0 shows all")
	matchCmd.Flags().String("csv", "", "export the full ranking as CSV into this directory")
	matchCmd.Flags().Bool("report", false, "generate an AI report for the top candidates")
}

// matchSession holds what the interactive menu works on.
type matchSession struct {
	config    *Config
	logger    *zap.Logger
	dataset   *staff.Dataset
	assistant *ai.Fallback
	filters   *filtering.Filtering

	project staff.Project
	ranked  []matching.Result
}

func match(cmd *cobra.Command) {
	ctx := context.Background()
	l, config := setup()

	l.Info("starting the staffmatch", zap.String("version", version))

	dataset, err := loadDataset(config.Dataset, l)
	if err != nil {
		l.Fatal("loading dataset", zap.Error(err))
	}

	if dataset.Projects.Len() == 0 {
		l.Info("exiting", zap.String("reason", "dataset has no projects"))
		return
	}

	s := &matchSession{
		config:  config,
		logger:  l,
		dataset: dataset,
		filters: filtering.New([]filtering.Filter{
			filtering.NewAvailableOnly(config.Matching.AvailableOnly),
			filtering.NewMinScore(config.Matching.MinScore),
			filtering.NewLimit(config.Matching.Limit),
		}, l),
	}

	l.Debug("filters", zap.Any("steps", s.filters.Describe()))

	if all, _ := cmd.Flags().GetBool("all"); all {
		if err := s.rankAll(ctx); err != nil {
			l.Fatal("ranking all projects", zap.Error(err))
		}
		return
	}

	projectID, _ := cmd.Flags().GetString("project")
	if err := s.selectProject(projectID); err != nil {
		if errors.Is(err, errExit) {
			return
		}
		l.Fatal("selecting a project", zap.Error(err))
	}

	if err := s.show(ctx); err != nil {
		l.Fatal("ranking", zap.Error(err))
	}

	if dir, _ := cmd.Flags().GetString("csv"); dir != "" {
		if err := s.exportCSV(dir); err != nil {
			l.Fatal("exporting csv", zap.Error(err))
		}
	}

	if report, _ := cmd.Flags().GetBool("report"); report {
		s.report(ctx)
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			l.Fatal("exiting", zap.Error(err))
		}

		if err := s.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			l.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *matchSession) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptExportCSV:
		return s.exportCSV(s.config.Export.Dir)
	case PromptReport:
		s.report(ctx)
		return nil
	case PromptShowAll:
		s.filters.DisableByName("limit", "full ranking requested")
		return s.show(ctx)
	case PromptResultsFile:
		filename, err := export.DumpToTmpFile(s.ranked)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptOtherProj:
		if err := s.selectProject(""); err != nil {
			return err
		}
		return s.show(ctx)
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// selectProject picks the project by id, or asks for it when id is empty.
func (s *matchSession) selectProject(id string) error {
	if id == "" {
		projectPrompt := promptui.Select{
			Label: "Choose a project and press ENTER",
			Items: append(s.dataset.Projects.Names(), PromptExit),
		}

		_, selected, err := projectPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptExit {
			return errExit
		}
		id = strings.Fields(selected)[0]
	}

	project := s.dataset.Projects.FindByID(id)
	if project == nil {
		return fmt.Errorf("there is no such project id %s (known: %s)", id, strings.Join(s.dataset.Projects.IDs(), ", "))
	}

	s.project = project.Clone()
	return nil
}

// show ranks the selected project and logs what the filters leave.
func (s *matchSession) show(ctx context.Context) error {
	s.ranked = matching.Rank(s.project, s.dataset.Employees)

	shown, err := s.filters.RunFilters(ctx, s.ranked)
	if err != nil {
		return err
	}

	logResults(s.logger, s.project, shown)

	if len(shown) == 0 {
		s.logger.Info("no employees left after filters", logger.ProjectFields(s.project.ID, s.project.Name)...)
	}
	return nil
}

func (s *matchSession) rankAll(ctx context.Context) error {
	ranked, err := matching.RankAll(ctx, s.dataset.Projects, s.dataset.Employees)
	if err != nil {
		return err
	}

	for _, project := range s.dataset.Projects {
		shown, err := s.filters.RunFilters(ctx, ranked[project.ID])
		if err != nil {
			return err
		}
		logResults(s.logger, project, shown)
	}
	return nil
}

func (s *matchSession) exportCSV(dir string) error {
	filename, err := export.ToCSVFile(dir, s.project.ID, s.ranked)
	if err != nil {
		return err
	}

	s.logger.Info("results exported",
		append(logger.ProjectFields(s.project.ID, s.project.Name),
			zap.String("filename", filename),
			zap.Int("count", len(s.ranked)),
		)...,
	)
	return nil
}

func (s *matchSession) report(ctx context.Context) {
	if s.assistant == nil {
		s.assistant = newAssistant(ctx, s.config.AI, s.logger)
	}

	report := s.assistant.Report(ctx, s.project, s.ranked)
	s.logger.Info("ai report", append(logger.ProjectFields(s.project.ID, s.project.Name), zap.Bool("ai_enabled", s.assistant.Enabled()))...)
	fmt.Println(report)
}
