package controllers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rios0rios0/autopublish/internal/domain/entities"
)

// TerminalDecisionProvider asks the operator through line-oriented prompts.
type TerminalDecisionProvider struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewTerminalDecisionProvider reads answers from in and writes prompts to out.
func NewTerminalDecisionProvider(in io.Reader, out io.Writer) *TerminalDecisionProvider {
	return &TerminalDecisionProvider{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// RequestRemoteURL returns ok=false when the operator enters "q", a blank line, or closes the input.
func (p *TerminalDecisionProvider) RequestRemoteURL(_ context.Context) (string, bool) {
	answer, ok := p.ask("Enter the remote repository URL (press 'q' to quit): ")
	if !ok || answer == "" || strings.EqualFold(answer, "q") {
		return "", false
	}
	return answer, true
}

// SelectRemote lists the remotes and returns the zero-based choice, defaulting to the first.
func (p *TerminalDecisionProvider) SelectRemote(_ context.Context, remotes []entities.Remote) int {
	_, _ = fmt.Fprintln(p.out, "Multiple remotes found:")
	for i, remote := range remotes {
		_, _ = fmt.Fprintf(p.out, "%d. %s (%s)\n", i+1, remote.Name, remote.URL)
	}

	answer, ok := p.ask("Select a remote number (default: 1): ")
	if !ok || answer == "" {
		return 0
	}

	choice, err := strconv.Atoi(answer)
	if err != nil || choice < 1 || choice > len(remotes) {
		return 0
	}
	return choice - 1
}

// RequestCommitMessage returns the entered message, or "" to use the default.
func (p *TerminalDecisionProvider) RequestCommitMessage() string {
	answer, _ := p.ask("Enter a commit message (press Enter to use the default): ")
	return answer
}

func (p *TerminalDecisionProvider) ask(prompt string) (string, bool) {
	_, _ = fmt.Fprint(p.out, prompt)

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}
