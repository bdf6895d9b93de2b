package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/autopublish/internal/domain/commands"
	"github.com/rios0rios0/autopublish/internal/domain/entities"
)

// PublishController handles publishing the working tree, either from the root
// command with a path argument or from the "publish" subcommand.
type PublishController struct {
	command commands.Publish
}

// NewPublishController creates a new PublishController.
func NewPublishController(command commands.Publish) *PublishController {
	return &PublishController{command: command}
}

// GetBind returns the Cobra command metadata for the publish controller.
func (it *PublishController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "publish [path]",
		Short: "Commit local changes and publish them to the remote repository",
		Long: `Stage every change in the working tree, commit it, and publish it.

Methods:
  local   push through a remote configured in the local repository (default)
  hosted  upload the changes through the GitHub or GitLab API using a token`,
	}
}

// Execute loads the settings, asks for the commit message and runs the publish.
func (it *PublishController) Execute(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, _ := cmd.Flags().GetString("config")
	method, _ := cmd.Flags().GetString("method")
	message, _ := cmd.Flags().GetString("message")

	directory := ""
	if len(args) > 0 {
		directory = args[0]
	}

	if configPath == "" {
		if found, err := entities.FindConfigFile(directory); err == nil {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(configPath, directory)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}
	if method != "" {
		settings.Method = method
		settings.Normalize()
	}

	decider := NewTerminalDecisionProvider(cmd.InOrStdin(), cmd.OutOrStdout())
	if !cmd.Flags().Changed("message") {
		message = decider.RequestCommitMessage()
	}

	published, runErr := it.command.Execute(ctx, settings, commands.PublishOptions{
		Message: message,
		Decider: decider,
	})
	if runErr != nil {
		logger.Errorf("Publish failed: %v", runErr)
		return
	}
	if !published {
		logger.Warn("Nothing was published")
	}
}

// AddFlags adds the publish-specific flags to the given Cobra command.
func (it *PublishController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("method", "", "Publish method: local or hosted (default from config, then local)")
	cmd.Flags().StringP("message", "m", "", "Commit message (skips the prompt; empty uses the default)")
}
