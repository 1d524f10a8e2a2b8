package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/ai"
	"github.com/spigell/staffmatch/internal/logger"
	"github.com/spigell/staffmatch/internal/staff"
)

var templateCmd = &cobra.Command{
	Use:   "template NAME",
	Short: "Suggest project details for a project name with AI",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd.Flags(), map[string]string{"dataset": "dataset"})
	},
	Run: func(cmd *cobra.Command, args []string) {
		template(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().String("dataset", "", "dataset file to add the project to when --save is set")
	templateCmd.Flags().Bool("save", false, "append the project to the dataset file")
}

func template(cmd *cobra.Command, name string) {
	ctx := context.Background()
	l, config := setup()

	assistant := newAssistant(ctx, config.AI, l)
	if !assistant.Enabled() {
		l.Fatal("ai is required for project templates", zap.String("hint", ai.MsgNotConfigured))
	}

	tpl := assistant.Template(ctx, name)
	if tpl == nil {
		l.Fatal("no project template generated", zap.String("name", name))
	}

	project := ai.ApplyTemplate(staff.Project{Name: name, RequiredLevel: staff.Junior}, tpl)

	pretty, _ := json.MarshalIndent(project, "", "  ")
	fmt.Println(string(pretty))

	if save, _ := cmd.Flags().GetBool("save"); !save {
		return
	}

	if config.Dataset == "" {
		l.Fatal("--dataset is required with --save")
	}

	dataset, err := staff.LoadDataset(config.Dataset)
	if err != nil {
		l.Fatal("loading dataset", zap.Error(err))
	}

	roster := staff.NewRoster(dataset)
	added, err := roster.AddProject(project)
	if err != nil {
		l.Fatal("adding project", zap.Error(err))
	}

	updated := &staff.Dataset{Employees: roster.Employees(), Projects: roster.Projects()}
	if err := updated.ToFile(config.Dataset); err != nil {
		l.Fatal("writing dataset", zap.Error(err))
	}

	l.Info("project added to dataset", append(logger.ProjectFields(added.ID, added.Name), zap.String("filename", config.Dataset))...)
}
