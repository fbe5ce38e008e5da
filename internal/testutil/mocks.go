// Package testutil provides in-memory fakes for the pipeline's capability
// interfaces so orchestrator tests spawn no real processes.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"issuetree/internal/git"
	"issuetree/internal/issue"
)

// MockGitBridge is a mock implementation of operations.GitBridge
type MockGitBridge struct {
	mock.Mock
}

func (m *MockGitBridge) FetchIssue(ctx context.Context, ref *issue.Reference) (*issue.Details, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*issue.Details), args.Error(1)
}

func (m *MockGitBridge) AddWorktree(ctx context.Context, branch, path, baseRef string) error {
	args := m.Called(ctx, branch, path, baseRef)
	return args.Error(0)
}

func (m *MockGitBridge) ListWorktrees(ctx context.Context) ([]git.WorktreeRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]git.WorktreeRecord), args.Error(1)
}

func (m *MockGitBridge) RemoveWorktree(ctx context.Context, path string, force bool) error {
	args := m.Called(ctx, path, force)
	return args.Error(0)
}

func (m *MockGitBridge) PruneWorktrees(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGitBridge) DefaultBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitBridge) HasUncommittedChanges(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

// CallCount returns how many times any method was invoked. Used to prove
// that validation failures never reach git.
func (m *MockGitBridge) CallCount() int {
	return len(m.Calls)
}

// MockInstaller is a mock implementation of operations.DependencyInstaller
type MockInstaller struct {
	mock.Mock
}

func (m *MockInstaller) Install(ctx context.Context, dir string, skip bool) error {
	args := m.Called(ctx, dir, skip)
	return args.Error(0)
}

// MockTerminalLauncher is a mock implementation of operations.TerminalLauncher
type MockTerminalLauncher struct {
	mock.Mock
}

func (m *MockTerminalLauncher) Open(ctx context.Context, app, dir string) error {
	args := m.Called(ctx, app, dir)
	return args.Error(0)
}

// MockAssistant is a scripted naming assistant
type MockAssistant struct {
	Suggestion string
	Err        error
}

func (m *MockAssistant) SuggestBranchName(ctx context.Context, title string) (string, error) {
	return m.Suggestion, m.Err
}
